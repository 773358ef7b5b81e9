package vectorize

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// mockEmbedder returns a deterministic vector derived from the text length.
type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls   []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls = append(m.calls, text)
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return domain.EmbeddingResult{
		Embedding:   []float32{float32(len(text)), 1},
		TotalTokens: len(text),
	}, nil
}

func TestVectorize_PreservesOrderAndCount(t *testing.T) {
	emb := &mockEmbedder{}
	svc := New(emb)

	p, err := svc.Vectorize(context.Background(), RawProfile{
		Skills:            []string{"Go", "SQL", "Kubernetes"},
		Responsibilities:  []string{"build services"},
		JobTitle:          "Backend Engineer",
		YearsOfExperience: 5,
	})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}

	if got := len(p.SkillVectors()); got != 3 {
		t.Errorf("skill vectors = %d, want 3", got)
	}
	if got := len(p.ResponsibilityVectors()); got != 1 {
		t.Errorf("responsibility vectors = %d, want 1", got)
	}
	if p.JobTitleVector() == nil {
		t.Error("job title vector missing")
	}
	if p.ExperienceVector() == nil {
		t.Error("experience vector missing")
	}

	// Vector order mirrors input text order: the mock encodes text length.
	for i, skill := range []string{"Go", "SQL", "Kubernetes"} {
		if got := p.SkillVectors()[i][0]; got != float32(len(skill)) {
			t.Errorf("skill vector %d = %f, want %d (order not preserved)", i, got, len(skill))
		}
	}
}

func TestVectorize_EmptyCategories(t *testing.T) {
	emb := &mockEmbedder{}
	svc := New(emb)

	p, err := svc.Vectorize(context.Background(), RawProfile{})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if len(p.SkillVectors()) != 0 || len(p.ResponsibilityVectors()) != 0 {
		t.Error("empty categories should produce no vectors")
	}
	if p.JobTitleVector() != nil || p.ExperienceVector() != nil {
		t.Error("absent title and years should produce no vectors")
	}
	if len(emb.calls) != 0 {
		t.Errorf("embedder called %d times for empty profile", len(emb.calls))
	}
}

func TestVectorize_ProviderErrorPropagates(t *testing.T) {
	emb := &mockEmbedder{
		embedFn: func(_ context.Context, _ string) (domain.EmbeddingResult, error) {
			return domain.EmbeddingResult{}, fmt.Errorf("api: %w", domain.ErrEmbeddingProviderError)
		},
	}
	svc := New(emb)

	_, err := svc.Vectorize(context.Background(), RawProfile{Skills: []string{"Go"}})
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestVectorize_RecordsUsage(t *testing.T) {
	emb := &mockEmbedder{}
	svc := New(emb)

	ctx, usage := domain.NewContextWithUsage(context.Background())
	_, err := svc.Vectorize(ctx, RawProfile{Skills: []string{"Go"}, JobTitle: "Dev"})
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if !usage.Used || usage.TotalTokens == 0 {
		t.Errorf("usage = %+v, want recorded tokens", usage)
	}
}
