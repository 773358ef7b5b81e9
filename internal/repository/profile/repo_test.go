package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/matchdex/internal/db"
	"github.com/kailas-cloud/matchdex/internal/domain"
	domprofile "github.com/kailas-cloud/matchdex/internal/domain/profile"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte) error
	setTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn    func(ctx context.Context, key string) error
	existsFn func(ctx context.Context, key string) (bool, error)
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setTTLFn != nil {
		return m.setTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func testProfile(t *testing.T) domprofile.Profile {
	t.Helper()
	p, err := domprofile.New(
		[]string{"go", "redis"},
		[]string{"build services"},
		"backend engineer", 5,
		[][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}},
		[][]float32{{0.7, 0.8, 0.9}},
		[]float32{0.11, 0.22, 0.33},
		[]float32{0.44, 0.55, 0.66},
	)
	if err != nil {
		t.Fatalf("build test profile: %v", err)
	}
	return p
}

func TestSave_CreatesAndOverwrites(t *testing.T) {
	ms := &mockKVStore{}
	repo := New(ms, 0)
	p := testProfile(t)

	var gotKey string
	ms.setFn = func(_ context.Context, key string, _ []byte) error {
		gotKey = key
		return nil
	}

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }
	created, err := repo.Save(context.Background(), "cand-1", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new profile")
	}
	if gotKey != domain.KeyPrefix+"profile:cand-1" {
		t.Errorf("unexpected key: %q", gotKey)
	}

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	created, err = repo.Save(context.Background(), "cand-1", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false when overwriting")
	}
}

func TestSave_UsesTTLWhenConfigured(t *testing.T) {
	ms := &mockKVStore{}
	repo := New(ms, time.Hour)

	var gotTTL time.Duration
	var plainSet bool
	ms.setTTLFn = func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
		gotTTL = ttl
		return nil
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte) error {
		plainSet = true
		return nil
	}

	if _, err := repo.Save(context.Background(), "cand-1", testProfile(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTTL != time.Hour {
		t.Errorf("expected TTL=1h, got %v", gotTTL)
	}
	if plainSet {
		t.Error("expected SetWithTTL, not Set")
	}
}

func TestSaveGet_RoundTrip(t *testing.T) {
	ms := &mockKVStore{}
	repo := New(ms, 0)
	p := testProfile(t)

	var stored []byte
	ms.setFn = func(_ context.Context, _ string, value []byte) error {
		stored = value
		return nil
	}
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return stored, nil
	}

	if _, err := repo.Save(context.Background(), "cand-1", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(context.Background(), "cand-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(got.Skills()) != 2 || got.Skills()[0] != "go" || got.Skills()[1] != "redis" {
		t.Errorf("skills changed: %v", got.Skills())
	}
	if len(got.Responsibilities()) != 1 || got.Responsibilities()[0] != "build services" {
		t.Errorf("responsibilities changed: %v", got.Responsibilities())
	}
	if got.JobTitle() != "backend engineer" || got.YearsOfExperience() != 5 {
		t.Errorf("scalar fields changed: %q, %d", got.JobTitle(), got.YearsOfExperience())
	}

	sv := got.SkillVectors()
	if len(sv) != 2 {
		t.Fatalf("expected 2 skill vectors, got %d", len(sv))
	}
	want := [][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}
	for i := range want {
		for j := range want[i] {
			if sv[i][j] != want[i][j] {
				t.Errorf("skill vector [%d][%d]: expected %v, got %v", i, j, want[i][j], sv[i][j])
			}
		}
	}
	if got.JobTitleVector()[2] != 0.33 || got.ExperienceVector()[0] != 0.44 {
		t.Errorf("scalar vectors changed: %v, %v", got.JobTitleVector(), got.ExperienceVector())
	}
	if got.Dimension() != 3 {
		t.Errorf("expected dimension 3, got %d", got.Dimension())
	}
}

func TestGet_NotFound(t *testing.T) {
	ms := &mockKVStore{}
	repo := New(ms, 0)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	t.Run("existing", func(t *testing.T) {
		ms := &mockKVStore{}
		repo := New(ms, 0)

		ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
		var delKey string
		ms.delFn = func(_ context.Context, key string) error {
			delKey = key
			return nil
		}

		if err := repo.Delete(context.Background(), "cand-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if delKey != domain.KeyPrefix+"profile:cand-1" {
			t.Errorf("unexpected key: %q", delKey)
		}
	})

	t.Run("missing", func(t *testing.T) {
		ms := &mockKVStore{}
		repo := New(ms, 0)

		ms.existsFn = func(_ context.Context, _ string) (bool, error) { return false, nil }

		err := repo.Delete(context.Background(), "cand-1")
		if !errors.Is(err, domain.ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestInvalidID(t *testing.T) {
	repo := New(&mockKVStore{}, 0)

	for _, id := range []string{"", "has space", "bad/slash", "колонка"} {
		if _, err := repo.Save(context.Background(), id, testProfile(t)); !errors.Is(err, domain.ErrInvalidProfile) {
			t.Errorf("save %q: expected ErrInvalidProfile, got %v", id, err)
		}
		if _, err := repo.Get(context.Background(), id); !errors.Is(err, domain.ErrInvalidProfile) {
			t.Errorf("get %q: expected ErrInvalidProfile, got %v", id, err)
		}
	}
}
