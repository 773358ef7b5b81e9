// Package profile persists candidate and requirement profiles in a
// key-value store as JSON documents, vectors included, so a stored profile
// can be matched again without re-embedding.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/matchdex/internal/db"
	"github.com/kailas-cloud/matchdex/internal/domain"
	domprofile "github.com/kailas-cloud/matchdex/internal/domain/profile"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// store is the consumer interface for profiles (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements usecase-facing profile storage.
type Repo struct {
	store store
	ttl   time.Duration
}

// New creates a profile repository. ttl <= 0 means entries never expire.
func New(s store, ttl time.Duration) *Repo {
	return &Repo{store: s, ttl: ttl}
}

// Save stores a profile under its ID. Returns true if the profile was created,
// false if an existing one was overwritten.
func (r *Repo) Save(ctx context.Context, id string, p domprofile.Profile) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	key := profileKey(id)

	data, err := json.Marshal(toDTO(p))
	if err != nil {
		return false, fmt.Errorf("marshal profile: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if r.ttl > 0 {
		err = r.store.SetWithTTL(ctx, key, data, r.ttl)
	} else {
		err = r.store.Set(ctx, key, data)
	}
	if err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}

	return !exists, nil
}

// Get returns a stored profile by ID.
func (r *Repo) Get(ctx context.Context, id string) (domprofile.Profile, error) {
	if err := validateID(id); err != nil {
		return domprofile.Profile{}, err
	}
	key := profileKey(id)

	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domprofile.Profile{}, domain.ErrProfileNotFound
		}
		return domprofile.Profile{}, fmt.Errorf("get %s: %w", key, err)
	}

	var dto profileDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domprofile.Profile{}, fmt.Errorf("unmarshal profile %s: %w", key, err)
	}
	return dto.toDomain(), nil
}

// Delete removes a stored profile.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	key := profileKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrProfileNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func profileKey(id string) string {
	return domain.KeyPrefix + "profile:" + id
}

func validateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: invalid profile id %q", domain.ErrInvalidProfile, id)
	}
	return nil
}
