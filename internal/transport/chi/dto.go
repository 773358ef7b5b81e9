package chi

import (
	matchuc "github.com/kailas-cloud/matchdex/internal/usecase/match"
	rankuc "github.com/kailas-cloud/matchdex/internal/usecase/rank"
	vectorizeuc "github.com/kailas-cloud/matchdex/internal/usecase/vectorize"
)

// errorCode identifies an API error class.
type errorCode string

const (
	codeBadRequest            errorCode = "bad_request"
	codeValidationFailed      errorCode = "validation_failed"
	codeProfileNotFound       errorCode = "profile_not_found"
	codeDimensionMismatch     errorCode = "dimension_mismatch"
	codeInvalidWeights        errorCode = "invalid_weights"
	codeComputationFailed     errorCode = "computation_failed"
	codeRateLimited           errorCode = "rate_limited"
	codeCancelled             errorCode = "cancelled"
	codeEmbeddingProviderErr  errorCode = "embedding_provider_error"
	codeInternalError         errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// profileInput is one side of a match. Either profile_id references a stored
// profile, or the inline fields are vectorized on the fly.
type profileInput struct {
	ProfileID         string   `json:"profile_id,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Responsibilities  []string `json:"responsibilities,omitempty"`
	JobTitle          string   `json:"job_title,omitempty"`
	YearsOfExperience int      `json:"years_of_experience,omitempty"`
}

func (p profileInput) toRaw() vectorizeuc.RawProfile {
	return vectorizeuc.RawProfile{
		Skills:            p.Skills,
		Responsibilities:  p.Responsibilities,
		JobTitle:          p.JobTitle,
		YearsOfExperience: p.YearsOfExperience,
	}
}

type weightsInput struct {
	Skills           float64 `json:"skills"`
	Responsibilities float64 `json:"responsibilities"`
	JobTitle         float64 `json:"job_title"`
	Experience       float64 `json:"experience"`
}

type matchRequest struct {
	Requirement profileInput  `json:"requirement"`
	Candidate   profileInput  `json:"candidate"`
	Weights     *weightsInput `json:"weights,omitempty"`
}

type rankCandidateInput struct {
	ID string `json:"id"`
	profileInput
}

type rankRequest struct {
	Requirement profileInput         `json:"requirement"`
	Candidates  []rankCandidateInput `json:"candidates"`
	Weights     *weightsInput        `json:"weights,omitempty"`
}

type breakdownDTO struct {
	SkillsScore           float64 `json:"skills_score"`
	ResponsibilitiesScore float64 `json:"responsibilities_score"`
	TitleScore            float64 `json:"title_score"`
	YearsScore            float64 `json:"years_score"`
}

type assignmentDTO struct {
	Category         string  `json:"category"`
	RequirementIndex int     `json:"requirement_index"`
	RequirementText  string  `json:"requirement_text"`
	CandidateIndex   int     `json:"candidate_index"`
	CandidateText    string  `json:"candidate_text"`
	Similarity       float64 `json:"similarity"`
	Matched          bool    `json:"matched"`
}

type itemRefDTO struct {
	Category string `json:"category"`
	Index    int    `json:"index"`
	Text     string `json:"text"`
}

type altCandidateDTO struct {
	Index      int     `json:"index"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

type alternativesDTO struct {
	Category         string            `json:"category"`
	RequirementIndex int               `json:"requirement_index"`
	Candidates       []altCandidateDTO `json:"candidates"`
}

type matchResponse struct {
	OverallScore float64           `json:"overall_score"`
	Breakdown    breakdownDTO      `json:"breakdown"`
	Assignments  []assignmentDTO   `json:"assignments,omitempty"`
	Unmatched    []itemRefDTO      `json:"unmatched,omitempty"`
	Alternatives []alternativesDTO `json:"alternatives,omitempty"`
	Explanation  string            `json:"explanation"`
}

type rankedCandidateDTO struct {
	ID           string         `json:"id"`
	Position     int            `json:"position"`
	OverallScore *float64       `json:"overall_score,omitempty"`
	Match        *matchResponse `json:"match,omitempty"`
	Error        *errorResponse `json:"error,omitempty"`
}

type rankResponse struct {
	Items     []rankedCandidateDTO `json:"items"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
}

type profileResponse struct {
	ID                    string      `json:"id"`
	Skills                []string    `json:"skills,omitempty"`
	Responsibilities      []string    `json:"responsibilities,omitempty"`
	JobTitle              string      `json:"job_title,omitempty"`
	YearsOfExperience     int         `json:"years_of_experience,omitempty"`
	Dimension             int         `json:"dimension"`
	SkillVectors          [][]float32 `json:"skill_vectors,omitempty"`
	ResponsibilityVectors [][]float32 `json:"responsibility_vectors,omitempty"`
	JobTitleVector        []float32   `json:"job_title_vector,omitempty"`
	ExperienceVector      []float32   `json:"experience_vector,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func matchResultToDTO(res matchuc.Result) matchResponse {
	out := matchResponse{
		OverallScore: res.OverallScore,
		Breakdown: breakdownDTO{
			SkillsScore:           res.Breakdown.SkillsScore,
			ResponsibilitiesScore: res.Breakdown.ResponsibilitiesScore,
			TitleScore:            res.Breakdown.TitleScore,
			YearsScore:            res.Breakdown.YearsScore,
		},
		Explanation: res.Explanation,
	}

	for _, a := range res.Assignments {
		out.Assignments = append(out.Assignments, assignmentDTO{
			Category:         string(a.Category),
			RequirementIndex: a.RequirementIndex,
			RequirementText:  a.RequirementText,
			CandidateIndex:   a.CandidateIndex,
			CandidateText:    a.CandidateText,
			Similarity:       a.Similarity,
			Matched:          a.Matched,
		})
	}

	for _, u := range res.Unmatched {
		out.Unmatched = append(out.Unmatched, itemRefDTO{
			Category: string(u.Category),
			Index:    u.Index,
			Text:     u.Text,
		})
	}

	for _, alt := range res.Alternatives {
		dto := alternativesDTO{
			Category:         string(alt.Category),
			RequirementIndex: alt.RequirementIndex,
		}
		for _, c := range alt.Candidates {
			dto.Candidates = append(dto.Candidates, altCandidateDTO{
				Index:      c.Index,
				Text:       c.Text,
				Similarity: c.Similarity,
			})
		}
		out.Alternatives = append(out.Alternatives, dto)
	}

	return out
}

func rankedToDTO(rc rankuc.RankedCandidate) rankedCandidateDTO {
	dto := rankedCandidateDTO{
		ID:       rc.ID,
		Position: rc.Position,
	}
	if rc.Err != nil {
		dto.Error = &errorResponse{
			Code:    rankErrorCode(rc.Err),
			Message: safeDomainMessage(rc.Err),
		}
		return dto
	}
	m := matchResultToDTO(rc.Result)
	dto.OverallScore = &m.OverallScore
	dto.Match = &m
	return dto
}
