package match

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// Weights are the relative category weights for score combination.
// Values are arbitrary positive units; Normalize converts them into a
// distribution before use.
type Weights struct {
	Skills           float64
	Responsibilities float64
	JobTitle         float64
	Experience       float64
}

// DefaultWeights returns the standard category weighting.
func DefaultWeights() Weights {
	return Weights{Skills: 80, Responsibilities: 15, JobTitle: 2.5, Experience: 2.5}
}

// Validate rejects non-finite components, and negative components when the
// total is positive (a mixed-sign input has no meaningful proportions).
// A zero or negative total is not an error; Normalize recovers it with
// equal weights.
func (w Weights) Validate() error {
	components := map[string]float64{
		"skills":           w.Skills,
		"responsibilities": w.Responsibilities,
		"job_title":        w.JobTitle,
		"experience":       w.Experience,
	}
	sum := w.Skills + w.Responsibilities + w.JobTitle + w.Experience
	for name, v := range components {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s is not finite: %w", name, domain.ErrInvalidWeights)
		}
		if v < 0 && sum > 0 {
			return fmt.Errorf("weight %s is negative: %w", name, domain.ErrInvalidWeights)
		}
	}
	return nil
}

// Normalize scales the weights to sum to 1.0, preserving relative
// proportions. A sum of zero (default-less input) falls back to equal
// quarters, a recovery path rather than an error.
func (w Weights) Normalize() Weights {
	sum := w.Skills + w.Responsibilities + w.JobTitle + w.Experience
	if sum <= 0 {
		return Weights{Skills: 0.25, Responsibilities: 0.25, JobTitle: 0.25, Experience: 0.25}
	}
	return Weights{
		Skills:           w.Skills / sum,
		Responsibilities: w.Responsibilities / sum,
		JobTitle:         w.JobTitle / sum,
		Experience:       w.Experience / sum,
	}
}
