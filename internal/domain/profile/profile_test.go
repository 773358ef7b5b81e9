package profile

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

func vec(dim int, fill float32) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = fill
	}
	return v
}

func TestNew(t *testing.T) {
	p, err := New(
		[]string{"Go", "SQL"}, []string{"build services"},
		"Backend Engineer", 5,
		[][]float32{vec(4, 0.1), vec(4, 0.2)}, [][]float32{vec(4, 0.3)},
		vec(4, 0.4), vec(4, 0.5),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := p.Skills(); len(got) != 2 || got[0] != "Go" || got[1] != "SQL" {
		t.Errorf("Skills() = %v", got)
	}
	if p.YearsOfExperience() != 5 {
		t.Errorf("YearsOfExperience() = %d", p.YearsOfExperience())
	}
	if p.Dimension() != 4 {
		t.Errorf("Dimension() = %d, want 4", p.Dimension())
	}
}

func TestNew_VectorCountMisaligned(t *testing.T) {
	_, err := New(
		[]string{"Go", "SQL"}, nil,
		"", 0,
		[][]float32{vec(4, 0.1)}, nil,
		nil, nil,
	)
	if !errors.Is(err, domain.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestNew_DimensionMismatch(t *testing.T) {
	_, err := New(
		[]string{"Go", "SQL"}, nil,
		"", 0,
		[][]float32{vec(4, 0.1), vec(8, 0.2)}, nil,
		nil, nil,
	)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNew_NegativeYears(t *testing.T) {
	_, err := New(nil, nil, "", -1, nil, nil, nil, nil)
	if !errors.Is(err, domain.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestNew_EmptyProfileIsValid(t *testing.T) {
	p, err := New(nil, nil, "", 0, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Dimension() != 0 {
		t.Errorf("Dimension() = %d, want 0", p.Dimension())
	}
}

func TestNew_CopiesInput(t *testing.T) {
	skills := []string{"Go"}
	vectors := [][]float32{vec(2, 0.5)}
	p, err := New(skills, nil, "", 0, vectors, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	skills[0] = "mutated"
	vectors[0][0] = 99

	if p.Skills()[0] != "Go" {
		t.Error("profile shares skill slice with caller")
	}
	if p.SkillVectors()[0][0] != 0.5 {
		t.Error("profile shares vector storage with caller")
	}
}
