// Package vectorize turns raw structured profiles (texts and years, no
// vectors) into matching-ready profiles by calling the embedding provider.
// The matching engine itself only consumes precomputed vectors; this service
// is the boundary to the external embedding collaborator.
package vectorize

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/matchdex/internal/domain"
	"github.com/kailas-cloud/matchdex/internal/domain/profile"
)

// RawProfile is one side of a match before vectorization.
type RawProfile struct {
	Skills            []string
	Responsibilities  []string
	JobTitle          string
	YearsOfExperience int
}

// Service vectorizes raw profiles category by category.
type Service struct {
	embed Embedder
}

// New creates a vectorization service.
func New(embed Embedder) *Service {
	return &Service{embed: embed}
}

// Vectorize embeds every category of the raw profile and assembles a
// validated Profile. Vector order and count mirror the input texts exactly;
// empty categories yield no vectors.
func (s *Service) Vectorize(ctx context.Context, raw RawProfile) (profile.Profile, error) {
	skillVecs, err := s.embedAll(ctx, raw.Skills)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("vectorize skills: %w", err)
	}

	respVecs, err := s.embedAll(ctx, raw.Responsibilities)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("vectorize responsibilities: %w", err)
	}

	var titleVec []float32
	if raw.JobTitle != "" {
		titleVec, err = s.embedOne(ctx, raw.JobTitle)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("vectorize job title: %w", err)
		}
	}

	var expVec []float32
	if raw.YearsOfExperience > 0 {
		expVec, err = s.embedOne(ctx, fmt.Sprintf("%d years of experience", raw.YearsOfExperience))
		if err != nil {
			return profile.Profile{}, fmt.Errorf("vectorize experience: %w", err)
		}
	}

	p, err := profile.New(
		raw.Skills, raw.Responsibilities,
		raw.JobTitle, raw.YearsOfExperience,
		skillVecs, respVecs, titleVec, expVec,
	)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("assemble profile: %w", err)
	}
	return p, nil
}

func (s *Service) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if be, ok := s.embed.(domain.BatchEmbedder); ok {
		res, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("batch embed: %w", err)
		}
		domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)
		return res.Embeddings, nil
	}

	res, err := domain.BatchFallback(ctx, s.embed, texts)
	if err != nil {
		return nil, err
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)
	return res.Embeddings, nil
}

func (s *Service) embedOne(ctx context.Context, text string) ([]float32, error) {
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)
	return res.Embedding, nil
}
