// Package match implements the candidate-to-requirement matching engine: it
// combines per-category similarity matrices, optimal assignments, and
// normalized weights into one explainable score. The engine is a pure
// function over caller-supplied profiles; it holds no state between calls
// and performs no I/O.
package match

import (
	"fmt"

	"github.com/kailas-cloud/matchdex/internal/domain"
	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
	"github.com/kailas-cloud/matchdex/internal/domain/profile"
)

// Default classification thresholds and alternatives depth.
const (
	DefaultSkillThreshold          = 0.70
	DefaultResponsibilityThreshold = 0.60
	DefaultAlternatives            = 3
)

// Service computes requirement-vs-candidate match results.
type Service struct {
	skillThreshold float64
	respThreshold  float64
	alternatives   int
}

// New creates a matching service with default thresholds.
func New() *Service {
	return &Service{
		skillThreshold: DefaultSkillThreshold,
		respThreshold:  DefaultResponsibilityThreshold,
		alternatives:   DefaultAlternatives,
	}
}

// WithThresholds configures the skill and responsibility match thresholds.
func (s *Service) WithThresholds(skill, responsibility float64) *Service {
	if skill > 0 {
		s.skillThreshold = skill
	}
	if responsibility > 0 {
		s.respThreshold = responsibility
	}
	return s
}

// WithAlternatives configures how many near-miss candidates are reported per
// requirement item.
func (s *Service) WithAlternatives(k int) *Service {
	if k >= 0 {
		s.alternatives = k
	}
	return s
}

// Compute matches one candidate against one requirement profile and returns
// the explainable result. Weights may be zero-valued; a zero sum falls back
// to equal category weights.
func (s *Service) Compute(req, cand profile.Profile, w dommatch.Weights) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, fmt.Errorf("validate weights: %w", err)
	}
	if rd, cd := req.Dimension(), cand.Dimension(); rd > 0 && cd > 0 && rd != cd {
		return Result{}, fmt.Errorf(
			"requirement dimension %d vs candidate dimension %d: %w",
			rd, cd, domain.ErrDimensionMismatch,
		)
	}

	norm := w.Normalize()

	skills, err := s.scoreCategory(
		CategorySkills, s.skillThreshold,
		req.Skills(), req.SkillVectors(),
		cand.Skills(), cand.SkillVectors(),
	)
	if err != nil {
		return Result{}, fmt.Errorf("score skills: %w", err)
	}

	resp, err := s.scoreCategory(
		CategoryResponsibilities, s.respThreshold,
		req.Responsibilities(), req.ResponsibilityVectors(),
		cand.Responsibilities(), cand.ResponsibilityVectors(),
	)
	if err != nil {
		return Result{}, fmt.Errorf("score responsibilities: %w", err)
	}

	title := titleScore(req.JobTitleVector(), cand.JobTitleVector())
	years := yearsScore(req.YearsOfExperience(), cand.YearsOfExperience())

	breakdown := Breakdown{
		SkillsScore:           skills.score,
		ResponsibilitiesScore: resp.score,
		TitleScore:            title,
		YearsScore:            years,
	}

	overall := 100 * (norm.Skills*skills.score/100 +
		norm.Responsibilities*resp.score/100 +
		norm.JobTitle*title/100 +
		norm.Experience*years)

	assignments := make([]AssignmentRecord, 0, len(skills.assignments)+len(resp.assignments))
	assignments = append(assignments, skills.assignments...)
	assignments = append(assignments, resp.assignments...)

	unmatched := make([]ItemRef, 0, len(skills.unmatched)+len(resp.unmatched))
	unmatched = append(unmatched, skills.unmatched...)
	unmatched = append(unmatched, resp.unmatched...)

	alternatives := make([]Alternatives, 0, len(skills.alternatives)+len(resp.alternatives))
	alternatives = append(alternatives, skills.alternatives...)
	alternatives = append(alternatives, resp.alternatives...)

	return Result{
		OverallScore: overall,
		Breakdown:    breakdown,
		Assignments:  assignments,
		Unmatched:    unmatched,
		Alternatives: alternatives,
		Explanation:  explain(overall, breakdown),
		Diagnostics: Diagnostics{
			SkillsMeanSimilarity:           skills.meanSimilarity,
			ResponsibilitiesMeanSimilarity: resp.meanSimilarity,
		},
	}, nil
}

// categoryResult is the per-category intermediate scoring state.
type categoryResult struct {
	score          float64
	meanSimilarity float64
	assignments    []AssignmentRecord
	unmatched      []ItemRef
	alternatives   []Alternatives
}

// scoreCategory builds the similarity matrix, solves the optimal assignment,
// and classifies each requirement item as matched or unmatched against the
// category threshold. The category score is the matched fraction of
// requirement items as a percentage; the raw assignment mean is kept as a
// diagnostic only.
func (s *Service) scoreCategory(
	cat Category, threshold float64,
	reqTexts []string, reqVectors [][]float32,
	candTexts []string, candVectors [][]float32,
) (categoryResult, error) {
	m, err := dommatch.BuildMatrix(reqVectors, candVectors)
	if err != nil {
		return categoryResult{}, fmt.Errorf("build matrix: %w", err)
	}

	// No requirements in this category: vacuously satisfied.
	if m.Rows() == 0 {
		return categoryResult{score: 100.0}, nil
	}

	assignment, err := dommatch.Solve(m)
	if err != nil {
		return categoryResult{}, fmt.Errorf("solve assignment: %w", err)
	}

	assigned := make(map[int]dommatch.Pair, len(assignment.Pairs))
	for _, p := range assignment.Pairs {
		assigned[p.Row] = p
	}

	res := categoryResult{meanSimilarity: assignment.Mean}
	matched := 0

	for i, text := range reqTexts {
		p, ok := assigned[i]
		if ok {
			rec := AssignmentRecord{
				Category:         cat,
				RequirementIndex: i,
				RequirementText:  text,
				CandidateIndex:   p.Col,
				CandidateText:    candTexts[p.Col],
				Similarity:       p.Score,
				Matched:          p.Score >= threshold,
			}
			res.assignments = append(res.assignments, rec)
			if rec.Matched {
				matched++
				continue
			}
		}
		res.unmatched = append(res.unmatched, ItemRef{Category: cat, Index: i, Text: text})
	}

	res.score = float64(matched) / float64(len(reqTexts)) * 100
	res.alternatives = topAlternatives(cat, m, candTexts, s.alternatives)
	return res, nil
}
