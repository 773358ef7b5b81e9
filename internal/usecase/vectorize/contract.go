package vectorize

import (
	"context"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// Embedder vectorizes a single text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
