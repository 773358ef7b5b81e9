package match

import (
	"fmt"
	"sort"

	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
)

// yearsScore applies the experience ratio rule, returning a value in [0,1].
// No requirement means nothing to fail; a shortfall scales linearly rather
// than dropping to a fixed penalty.
func yearsScore(required, candidate int) float64 {
	if required <= 0 {
		return 1.0
	}
	if candidate >= required {
		return 1.0
	}
	return float64(candidate) / float64(required)
}

// titleScore is the direct cosine similarity between the two title
// embeddings, scaled to [0,100]. An absent title on either side scores 0.
func titleScore(reqTitle, candTitle []float32) float64 {
	if len(reqTitle) == 0 || len(candTitle) == 0 {
		return 0.0
	}
	return dommatch.ClippedCosine(reqTitle, candTitle) * 100
}

// topAlternatives collects, for every requirement row, the top-K candidate
// items by raw similarity. The assigned partner is not treated specially: it
// appears only when it lands in the top K on its own similarity. Ties break
// by candidate index, keeping the output deterministic.
func topAlternatives(cat Category, m dommatch.Matrix, candTexts []string, k int) []Alternatives {
	if k <= 0 || m.IsEmpty() {
		return nil
	}

	out := make([]Alternatives, 0, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		candidates := make([]AltCandidate, m.Cols())
		for j := 0; j < m.Cols(); j++ {
			candidates[j] = AltCandidate{Index: j, Text: candTexts[j], Similarity: m.At(i, j)}
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].Similarity > candidates[b].Similarity
		})
		if len(candidates) > k {
			candidates = candidates[:k]
		}
		out = append(out, Alternatives{Category: cat, RequirementIndex: i, Candidates: candidates})
	}
	return out
}

// explain builds the deterministic human-readable summary from the breakdown.
// The weakest category is named as the dominant driver; ties resolve in fixed
// category order.
func explain(overall float64, b Breakdown) string {
	type scored struct {
		cat   Category
		score float64
	}
	categories := []scored{
		{CategorySkills, b.SkillsScore},
		{CategoryResponsibilities, b.ResponsibilitiesScore},
		{CategoryJobTitle, b.TitleScore},
		{CategoryExperience, b.YearsScore * 100},
	}

	weakest := categories[0]
	for _, c := range categories[1:] {
		if c.score < weakest.score {
			weakest = c
		}
	}

	return fmt.Sprintf(
		"overall %.1f/100: skills %.1f, responsibilities %.1f, job title %.1f, experience %.1f; weakest category: %s (%.1f)",
		overall,
		b.SkillsScore, b.ResponsibilitiesScore, b.TitleScore, b.YearsScore*100,
		weakest.cat, weakest.score,
	)
}
