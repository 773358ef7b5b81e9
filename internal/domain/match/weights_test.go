package match

import (
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

func TestNormalize_Defaults(t *testing.T) {
	n := DefaultWeights().Normalize()
	want := Weights{Skills: 0.8, Responsibilities: 0.15, JobTitle: 0.025, Experience: 0.025}
	if math.Abs(n.Skills-want.Skills) > 1e-9 ||
		math.Abs(n.Responsibilities-want.Responsibilities) > 1e-9 ||
		math.Abs(n.JobTitle-want.JobTitle) > 1e-9 ||
		math.Abs(n.Experience-want.Experience) > 1e-9 {
		t.Errorf("Normalize = %+v, want %+v", n, want)
	}
}

func TestNormalize_SumsToOne(t *testing.T) {
	cases := []Weights{
		{Skills: 80, Responsibilities: 15, JobTitle: 2.5, Experience: 2.5},
		{Skills: 1, Responsibilities: 1, JobTitle: 1, Experience: 1},
		{Skills: 0.001, Responsibilities: 100, JobTitle: 3, Experience: 0},
		{},
		{Skills: -1, Responsibilities: -2, JobTitle: -3, Experience: -4},
	}
	for _, w := range cases {
		n := w.Normalize()
		sum := n.Skills + n.Responsibilities + n.JobTitle + n.Experience
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Normalize(%+v) sums to %f, want 1.0", w, sum)
		}
	}
}

func TestNormalize_ZeroSumFallsBackToEqual(t *testing.T) {
	for _, w := range []Weights{{}, {Skills: -5, Responsibilities: -1, JobTitle: 0, Experience: 0}} {
		n := w.Normalize()
		equal := Weights{Skills: 0.25, Responsibilities: 0.25, JobTitle: 0.25, Experience: 0.25}
		if n != equal {
			t.Errorf("Normalize(%+v) = %+v, want equal quarters", w, n)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		if err := DefaultWeights().Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})

	t.Run("NaN rejected", func(t *testing.T) {
		w := Weights{Skills: math.NaN(), Responsibilities: 1, JobTitle: 1, Experience: 1}
		if err := w.Validate(); !errors.Is(err, domain.ErrInvalidWeights) {
			t.Fatalf("expected ErrInvalidWeights, got %v", err)
		}
	})

	t.Run("negative component with positive total rejected", func(t *testing.T) {
		w := Weights{Skills: 10, Responsibilities: -1, JobTitle: 1, Experience: 1}
		if err := w.Validate(); !errors.Is(err, domain.ErrInvalidWeights) {
			t.Fatalf("expected ErrInvalidWeights, got %v", err)
		}
	})

	t.Run("zero total passes (recovered by Normalize)", func(t *testing.T) {
		if err := (Weights{}).Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})
}
