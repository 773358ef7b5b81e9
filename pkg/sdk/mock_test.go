package matchdex

import (
	"context"

	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
	"github.com/kailas-cloud/matchdex/internal/domain/profile"
	healthuc "github.com/kailas-cloud/matchdex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/matchdex/internal/usecase/match"
	rankuc "github.com/kailas-cloud/matchdex/internal/usecase/rank"
	vectorizeuc "github.com/kailas-cloud/matchdex/internal/usecase/vectorize"
)

// --- matcherUseCase mock ---

type mockMatcherUC struct {
	computeFn func(req, cand profile.Profile, w dommatch.Weights) (matchuc.Result, error)
}

func (m *mockMatcherUC) Compute(req, cand profile.Profile, w dommatch.Weights) (matchuc.Result, error) {
	return m.computeFn(req, cand, w)
}

// --- rankerUseCase mock ---

type mockRankerUC struct {
	rankFn func(ctx context.Context, req profile.Profile, candidates []rankuc.Candidate, w dommatch.Weights) []rankuc.RankedCandidate
}

func (m *mockRankerUC) Rank(
	ctx context.Context, req profile.Profile, candidates []rankuc.Candidate, w dommatch.Weights,
) []rankuc.RankedCandidate {
	return m.rankFn(ctx, req, candidates, w)
}

// --- vectorizerUseCase mock ---

type mockVectorizerUC struct {
	vectorizeFn func(ctx context.Context, raw vectorizeuc.RawProfile) (profile.Profile, error)
}

func (m *mockVectorizerUC) Vectorize(ctx context.Context, raw vectorizeuc.RawProfile) (profile.Profile, error) {
	return m.vectorizeFn(ctx, raw)
}

// --- profileStore mock ---

type mockProfileStore struct {
	saveFn   func(ctx context.Context, id string, p profile.Profile) (bool, error)
	getFn    func(ctx context.Context, id string) (profile.Profile, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockProfileStore) Save(ctx context.Context, id string, p profile.Profile) (bool, error) {
	return m.saveFn(ctx, id, p)
}

func (m *mockProfileStore) Get(ctx context.Context, id string) (profile.Profile, error) {
	return m.getFn(ctx, id)
}

func (m *mockProfileStore) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	checkFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealthUC) Check(ctx context.Context) healthuc.Report {
	return m.checkFn(ctx)
}

// --- helpers ---

func testClient(
	matcher matcherUseCase,
	ranker rankerUseCase,
	vectorizer vectorizerUseCase,
	profiles profileStore,
	health healthUseCase,
) *Client {
	return &Client{
		matcher:    matcher,
		ranker:     ranker,
		vectorizer: vectorizer,
		profiles:   profiles,
		healthSvc:  health,
		weights:    dommatch.DefaultWeights(),
	}
}

// testStoredProfile builds a small valid profile for test fixtures.
func testStoredProfile() profile.Profile {
	return profile.Reconstruct(
		[]string{"go"}, nil,
		"engineer", 3,
		[][]float32{{1, 0, 0}}, nil,
		[]float32{0, 1, 0}, []float32{0, 0, 1},
	)
}
