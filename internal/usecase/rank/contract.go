package rank

import (
	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
	"github.com/kailas-cloud/matchdex/internal/domain/profile"
	matchuc "github.com/kailas-cloud/matchdex/internal/usecase/match"
)

// Matcher computes a single requirement-vs-candidate comparison.
type Matcher interface {
	Compute(req, cand profile.Profile, w dommatch.Weights) (matchuc.Result, error)
}
