// Package profile defines the structured representation of one side of a
// match: a job requirement or a candidate. Item order is meaningful: the
// position of a skill or responsibility in its list is the identifier used
// for explainability back-references.
package profile

import (
	"fmt"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// MaxItems caps the number of items per category. Requirement and candidate
// lists are tens of items in practice; the cap keeps the O(n³) assignment
// solver cheap.
const MaxItems = 256

// Profile is an immutable structured profile with precomputed embeddings.
type Profile struct {
	skills            []string
	responsibilities  []string
	jobTitle          string
	yearsOfExperience int

	skillVectors          [][]float32
	responsibilityVectors [][]float32
	jobTitleVector        []float32
	experienceVector      []float32
}

// New validates and creates a Profile.
// Every vector list must align one-to-one with its text list, and all
// non-empty vectors within the profile must share a single dimension.
func New(
	skills, responsibilities []string,
	jobTitle string, yearsOfExperience int,
	skillVectors, responsibilityVectors [][]float32,
	jobTitleVector, experienceVector []float32,
) (Profile, error) {
	if len(skills) > MaxItems || len(responsibilities) > MaxItems {
		return Profile{}, fmt.Errorf("too many items (max %d): %w", MaxItems, domain.ErrInvalidProfile)
	}
	if yearsOfExperience < 0 {
		return Profile{}, fmt.Errorf("years of experience must be non-negative: %w", domain.ErrInvalidProfile)
	}
	if len(skillVectors) != len(skills) {
		return Profile{}, fmt.Errorf(
			"skill vectors (%d) do not align with skills (%d): %w",
			len(skillVectors), len(skills), domain.ErrInvalidProfile,
		)
	}
	if len(responsibilityVectors) != len(responsibilities) {
		return Profile{}, fmt.Errorf(
			"responsibility vectors (%d) do not align with responsibilities (%d): %w",
			len(responsibilityVectors), len(responsibilities), domain.ErrInvalidProfile,
		)
	}

	p := Profile{
		skills:                cloneStrings(skills),
		responsibilities:      cloneStrings(responsibilities),
		jobTitle:              jobTitle,
		yearsOfExperience:     yearsOfExperience,
		skillVectors:          cloneVectors(skillVectors),
		responsibilityVectors: cloneVectors(responsibilityVectors),
		jobTitleVector:        cloneVector(jobTitleVector),
		experienceVector:      cloneVector(experienceVector),
	}

	if err := p.checkDimensions(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Reconstruct creates a Profile without validation (storage hydration).
func Reconstruct(
	skills, responsibilities []string,
	jobTitle string, yearsOfExperience int,
	skillVectors, responsibilityVectors [][]float32,
	jobTitleVector, experienceVector []float32,
) Profile {
	return Profile{
		skills:                skills,
		responsibilities:      responsibilities,
		jobTitle:              jobTitle,
		yearsOfExperience:     yearsOfExperience,
		skillVectors:          skillVectors,
		responsibilityVectors: responsibilityVectors,
		jobTitleVector:        jobTitleVector,
		experienceVector:      experienceVector,
	}
}

// checkDimensions verifies that all non-empty vectors share one dimension.
func (p *Profile) checkDimensions() error {
	dim := 0
	check := func(v []float32) error {
		if len(v) == 0 {
			return nil
		}
		if dim == 0 {
			dim = len(v)
			return nil
		}
		if len(v) != dim {
			return fmt.Errorf(
				"vector length %d differs from profile dimension %d: %w",
				len(v), dim, domain.ErrDimensionMismatch,
			)
		}
		return nil
	}

	for _, v := range p.skillVectors {
		if err := check(v); err != nil {
			return err
		}
	}
	for _, v := range p.responsibilityVectors {
		if err := check(v); err != nil {
			return err
		}
	}
	if err := check(p.jobTitleVector); err != nil {
		return err
	}
	return check(p.experienceVector)
}

// Dimension returns the embedding dimension, or 0 when the profile carries no vectors.
func (p *Profile) Dimension() int {
	if len(p.skillVectors) > 0 {
		return len(p.skillVectors[0])
	}
	if len(p.responsibilityVectors) > 0 {
		return len(p.responsibilityVectors[0])
	}
	if len(p.jobTitleVector) > 0 {
		return len(p.jobTitleVector)
	}
	return len(p.experienceVector)
}

// Skills returns the skill texts in source order.
func (p *Profile) Skills() []string { return p.skills }

// Responsibilities returns the responsibility sentences in source order.
func (p *Profile) Responsibilities() []string { return p.responsibilities }

// JobTitle returns the job title text.
func (p *Profile) JobTitle() string { return p.jobTitle }

// YearsOfExperience returns the years of experience.
func (p *Profile) YearsOfExperience() int { return p.yearsOfExperience }

// SkillVectors returns the skill embeddings, index-aligned with Skills.
func (p *Profile) SkillVectors() [][]float32 { return p.skillVectors }

// ResponsibilityVectors returns the responsibility embeddings, index-aligned with Responsibilities.
func (p *Profile) ResponsibilityVectors() [][]float32 { return p.responsibilityVectors }

// JobTitleVector returns the job title embedding, nil when absent.
func (p *Profile) JobTitleVector() []float32 { return p.jobTitleVector }

// ExperienceVector returns the experience embedding, nil when absent.
func (p *Profile) ExperienceVector() []float32 { return p.experienceVector }

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneVector(v []float32) []float32 {
	if v == nil {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}

func cloneVectors(vs [][]float32) [][]float32 {
	if vs == nil {
		return nil
	}
	out := make([][]float32, len(vs))
	for i, v := range vs {
		out[i] = cloneVector(v)
	}
	return out
}
