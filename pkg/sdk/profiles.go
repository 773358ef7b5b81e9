package matchdex

import (
	"context"
	"fmt"
	"time"
)

// ProfileService manages stored, pre-vectorized profiles.
type ProfileService struct {
	store      profileStore
	vectorizer vectorizerUseCase
	obs        *observer
}

// Profiles returns the stored-profile service.
func (c *Client) Profiles() *ProfileService {
	return &ProfileService{
		store:      c.profiles,
		vectorizer: c.vectorizer,
		obs:        c.obs,
	}
}

// Upsert vectorizes the raw profile and stores it under the given ID.
// Returns true when the profile was created, false when it replaced an
// existing one.
func (s *ProfileService) Upsert(
	ctx context.Context, id string, in ProfileInput,
) (created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("profile.upsert", start, err) }()

	p, err := s.vectorizer.Vectorize(ctx, toRawProfile(in))
	if err != nil {
		return false, fmt.Errorf("upsert profile: %w", err)
	}
	created, err = s.store.Save(ctx, id, p)
	if err != nil {
		return false, fmt.Errorf("upsert profile: %w", err)
	}
	return created, nil
}

// Get retrieves a stored profile's structured fields and vector dimension.
func (s *ProfileService) Get(ctx context.Context, id string) (_ ProfileInfo, err error) {
	start := time.Now()
	defer func() { s.obs.observe("profile.get", start, err) }()

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return ProfileInfo{}, fmt.Errorf("get profile: %w", err)
	}
	return ProfileInfo{
		ID:                id,
		Skills:            p.Skills(),
		Responsibilities:  p.Responsibilities(),
		JobTitle:          p.JobTitle(),
		YearsOfExperience: p.YearsOfExperience(),
		Dimension:         p.Dimension(),
	}, nil
}

// Delete removes a stored profile.
func (s *ProfileService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("profile.delete", start, err) }()

	if err = s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
