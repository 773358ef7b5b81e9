package matchdex

import "github.com/kailas-cloud/matchdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDimensionMismatch      = domain.ErrDimensionMismatch
	ErrInvalidWeights         = domain.ErrInvalidWeights
	ErrComputation            = domain.ErrComputation
	ErrInvalidProfile         = domain.ErrInvalidProfile
	ErrProfileNotFound        = domain.ErrProfileNotFound
	ErrRateLimited            = domain.ErrRateLimited
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
)
