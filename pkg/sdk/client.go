package matchdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/matchdex/internal/db"
	dbRedis "github.com/kailas-cloud/matchdex/internal/db/redis"
	"github.com/kailas-cloud/matchdex/internal/domain"
	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
	"github.com/kailas-cloud/matchdex/internal/domain/profile"
	"github.com/kailas-cloud/matchdex/internal/repository/embcache"
	profilerepo "github.com/kailas-cloud/matchdex/internal/repository/profile"
	openaiEmb "github.com/kailas-cloud/matchdex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/matchdex/internal/usecase/health"
	matchuc "github.com/kailas-cloud/matchdex/internal/usecase/match"
	rankuc "github.com/kailas-cloud/matchdex/internal/usecase/rank"
	vectorizeuc "github.com/kailas-cloud/matchdex/internal/usecase/vectorize"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for test substitution.

type matcherUseCase interface {
	Compute(req, cand profile.Profile, w dommatch.Weights) (matchuc.Result, error)
}

type rankerUseCase interface {
	Rank(ctx context.Context, req profile.Profile, candidates []rankuc.Candidate, w dommatch.Weights) []rankuc.RankedCandidate
}

type vectorizerUseCase interface {
	Vectorize(ctx context.Context, raw vectorizeuc.RawProfile) (profile.Profile, error)
}

type profileStore interface {
	Save(ctx context.Context, id string, p profile.Profile) (bool, error)
	Get(ctx context.Context, id string) (profile.Profile, error)
	Delete(ctx context.Context, id string) error
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the matchdex SDK entry point.
type Client struct {
	store      db.Store
	matcher    matcherUseCase
	ranker     rankerUseCase
	vectorizer vectorizerUseCase
	profiles   profileStore
	healthSvc  healthUseCase
	weights    dommatch.Weights
	obs        *observer
}

// New creates a matchdex Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("matchdex: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("matchdex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	// Both supported drivers speak RESP; one rueidis-backed store covers them.
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("matchdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("matchdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	base, model := buildEmbedder(cfg)
	checker := embeddingChecker(base)

	embedder := base
	if !cfg.noCache {
		if _, isNoop := base.(*noopEmbedder); !isNoop {
			embedder = embcache.New(base, store, embcache.DefaultKeyFunc(model), nil, zap.NewNop())
		}
	}

	matchSvc := matchuc.New()
	if cfg.skillThreshold > 0 || cfg.responsibilityThresh > 0 {
		matchSvc = matchSvc.WithThresholds(cfg.skillThreshold, cfg.responsibilityThresh)
	}
	if cfg.alternatives > 0 {
		matchSvc = matchSvc.WithAlternatives(cfg.alternatives)
	}

	rankSvc := rankuc.New(matchSvc, zap.NewNop())
	if cfg.rankWorkers > 0 {
		rankSvc = rankSvc.WithWorkers(cfg.rankWorkers)
	}

	weights := dommatch.DefaultWeights()
	if cfg.weights != nil {
		weights = toInternalWeights(*cfg.weights)
	}

	return &Client{
		store:      store,
		matcher:    matchSvc,
		ranker:     rankSvc,
		vectorizer: vectorizeuc.New(embedder),
		profiles:   profilerepo.New(store, cfg.profileTTL),
		healthSvc:  healthuc.New(store, checker),
		weights:    weights,
		obs:        obs,
	}
}

// buildEmbedder resolves the configured embedding provider and the model
// name used for cache keys.
func buildEmbedder(cfg *clientConfig) (domain.Embedder, string) {
	if cfg.embedder != nil {
		return &embedderAdapter{inner: cfg.embedder}, "custom"
	}
	if cfg.openai != nil {
		defaults := domain.DefaultVectorConfig()
		model := cfg.openai.model
		if model == "" {
			model = defaults.Model
		}
		dims := cfg.openai.dimensions
		if dims <= 0 {
			dims = defaults.Dimensions
		}
		return openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.openai.apiKey,
			BaseURL:    cfg.openai.baseURL,
			Model:      model,
			Dimensions: dims,
			Logger:     zap.NewNop(),
		}), model
	}
	return &noopEmbedder{}, ""
}

// embeddingChecker exposes the embedder's health check when it has one.
func embeddingChecker(e domain.Embedder) healthuc.EmbeddingChecker {
	if hc, ok := e.(domain.HealthChecker); ok {
		return hc
	}
	return nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// resolveRef turns a ProfileRef into a matching-ready profile: stored
// profiles load from the database, inline ones are vectorized.
func (c *Client) resolveRef(ctx context.Context, ref ProfileRef) (profile.Profile, error) {
	switch {
	case ref.ID != "" && ref.Inline != nil:
		return profile.Profile{}, fmt.Errorf("profile reference sets both ID and Inline: %w", domain.ErrInvalidProfile)
	case ref.ID != "":
		return c.profiles.Get(ctx, ref.ID)
	case ref.Inline != nil:
		return c.vectorizer.Vectorize(ctx, toRawProfile(*ref.Inline))
	default:
		return profile.Profile{}, fmt.Errorf("empty profile reference: %w", domain.ErrInvalidProfile)
	}
}

// embedderAdapter wraps the public Embedder to satisfy the internal
// embedding contract, with batch support when the inner embedder has it.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

func (a *embedderAdapter) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := a.inner.(BatchEmbedder); ok {
		r, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("batch embed: %w", err)
		}
		return domain.BatchEmbeddingResult{
			Embeddings:   r.Embeddings,
			PromptTokens: r.PromptTokens,
			TotalTokens:  r.TotalTokens,
		}, nil
	}
	return domain.BatchFallback(ctx, a, texts)
}

// noopEmbedder returns an error on Embed call (used when no embedder configured).
type noopEmbedder struct{}

func (*noopEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{}, errors.New(
		"matchdex: embedder not configured (use WithOpenAI or WithEmbedder for inline profiles)",
	)
}
