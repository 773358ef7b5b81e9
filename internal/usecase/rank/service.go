// Package rank matches one requirement against many candidates in parallel
// and returns a ranked list. Comparisons are independent and CPU-bound, so
// the pool shares only read-only requirement data and needs no locking.
package rank

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
	"github.com/kailas-cloud/matchdex/internal/domain/profile"
	matchuc "github.com/kailas-cloud/matchdex/internal/usecase/match"
)

// DefaultWorkers is the comparison pool size when none is configured.
const DefaultWorkers = 4

// Candidate is one ranked-matching input, with an optional caller-supplied
// identifier carried through to the output.
type Candidate struct {
	ID      string
	Profile profile.Profile
}

// RankedCandidate is one entry of the ranked output. Err is set when this
// candidate's comparison failed or was cancelled; the rest of the batch is
// unaffected.
type RankedCandidate struct {
	ID       string
	Position int // original position in the input list
	Result   matchuc.Result
	Err      error
}

// Service ranks candidates against a requirement over a worker pool.
type Service struct {
	matcher Matcher
	workers int
	logger  *zap.Logger
}

// New creates a ranking service.
func New(matcher Matcher, logger *zap.Logger) *Service {
	return &Service{matcher: matcher, workers: DefaultWorkers, logger: logger}
}

// WithWorkers configures the comparison pool size.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// Rank compares every candidate against the requirement and returns the list
// sorted by overall score descending. Ties break by original candidate
// position, so the order is reproducible. Failed comparisons sort after all
// successful ones, keeping their original relative order. Cancelling the
// context stops dispatching further comparisons; in-flight ones run to
// completion (they perform no blocking calls and finish quickly).
func (s *Service) Rank(
	ctx context.Context, req profile.Profile, candidates []Candidate, w dommatch.Weights,
) []RankedCandidate {
	results := make([]RankedCandidate, len(candidates))

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	for k := 0; k < workers; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := s.matcher.Compute(req, candidates[i].Profile, w)
				if err != nil {
					err = fmt.Errorf("compare candidate %d: %w", i, err)
					s.logger.Warn("Candidate comparison failed",
						zap.Int("position", i),
						zap.String("candidate_id", candidates[i].ID),
						zap.Error(err),
					)
				}
				results[i] = RankedCandidate{
					ID:       candidates[i].ID,
					Position: i,
					Result:   res,
					Err:      err,
				}
			}
		}()
	}

	dispatched := 0
dispatch:
	for i := range candidates {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()

	for i := dispatched; i < len(candidates); i++ {
		results[i] = RankedCandidate{
			ID:       candidates[i].ID,
			Position: i,
			Err:      fmt.Errorf("comparison not dispatched: %w", ctx.Err()),
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		ra, rb := results[a], results[b]
		if (ra.Err == nil) != (rb.Err == nil) {
			return ra.Err == nil
		}
		if ra.Err != nil {
			return false // errored entries keep original relative order
		}
		return ra.Result.OverallScore > rb.Result.OverallScore
	})

	return results
}
