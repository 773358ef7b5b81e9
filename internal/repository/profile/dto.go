package profile

import (
	domprofile "github.com/kailas-cloud/matchdex/internal/domain/profile"
)

// profileDTO is the stored JSON shape. Vectors ride along with texts so a
// round trip preserves order, count, and exact float32 values per category.
type profileDTO struct {
	Skills                []string    `json:"skills,omitempty"`
	Responsibilities      []string    `json:"responsibilities,omitempty"`
	JobTitle              string      `json:"job_title,omitempty"`
	YearsOfExperience     int         `json:"years_of_experience,omitempty"`
	SkillVectors          [][]float32 `json:"skill_vectors,omitempty"`
	ResponsibilityVectors [][]float32 `json:"responsibility_vectors,omitempty"`
	JobTitleVector        []float32   `json:"job_title_vector,omitempty"`
	ExperienceVector      []float32   `json:"experience_vector,omitempty"`
}

func toDTO(p domprofile.Profile) profileDTO {
	return profileDTO{
		Skills:                p.Skills(),
		Responsibilities:      p.Responsibilities(),
		JobTitle:              p.JobTitle(),
		YearsOfExperience:     p.YearsOfExperience(),
		SkillVectors:          p.SkillVectors(),
		ResponsibilityVectors: p.ResponsibilityVectors(),
		JobTitleVector:        p.JobTitleVector(),
		ExperienceVector:      p.ExperienceVector(),
	}
}

func (d profileDTO) toDomain() domprofile.Profile {
	return domprofile.Reconstruct(
		d.Skills, d.Responsibilities,
		d.JobTitle, d.YearsOfExperience,
		d.SkillVectors, d.ResponsibilityVectors,
		d.JobTitleVector, d.ExperienceVector,
	)
}
