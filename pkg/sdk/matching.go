package matchdex

import (
	"context"
	"fmt"
	"time"

	dommatch "github.com/kailas-cloud/matchdex/internal/domain/match"
	matchuc "github.com/kailas-cloud/matchdex/internal/usecase/match"
	rankuc "github.com/kailas-cloud/matchdex/internal/usecase/rank"
	vectorizeuc "github.com/kailas-cloud/matchdex/internal/usecase/vectorize"
)

// Match compares one requirement profile against one candidate profile and
// returns an explainable scored result.
func (c *Client) Match(ctx context.Context, req MatchRequest) (_ MatchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match", start, err) }()

	requirement, err := c.resolveRef(ctx, req.Requirement)
	if err != nil {
		return MatchResult{}, fmt.Errorf("match: requirement: %w", err)
	}
	candidate, err := c.resolveRef(ctx, req.Candidate)
	if err != nil {
		return MatchResult{}, fmt.Errorf("match: candidate: %w", err)
	}

	res, err := c.matcher.Compute(requirement, candidate, c.requestWeights(req.Weights))
	if err != nil {
		return MatchResult{}, fmt.Errorf("match: %w", err)
	}
	return fromInternalResult(res), nil
}

// Rank compares every candidate against the requirement and returns the
// list sorted by overall score descending, errored entries last. One
// candidate's failure does not affect the rest of the batch.
func (c *Client) Rank(ctx context.Context, req RankRequest) (_ []RankedCandidate, err error) {
	start := time.Now()
	defer func() { c.obs.observe("rank", start, err) }()

	if len(req.Candidates) == 0 {
		return nil, fmt.Errorf("rank: no candidates: %w", ErrInvalidProfile)
	}

	requirement, err := c.resolveRef(ctx, req.Requirement)
	if err != nil {
		return nil, fmt.Errorf("rank: requirement: %w", err)
	}

	candidates := make([]rankuc.Candidate, len(req.Candidates))
	for i, rc := range req.Candidates {
		p, err := c.resolveRef(ctx, ProfileRef{ID: rc.ID, Inline: rc.Inline})
		if err != nil {
			return nil, fmt.Errorf("rank: candidate %d: %w", i, err)
		}
		outID := rc.OutID
		if outID == "" {
			outID = rc.ID
		}
		candidates[i] = rankuc.Candidate{ID: outID, Profile: p}
	}

	ranked := c.ranker.Rank(ctx, requirement, candidates, c.requestWeights(req.Weights))

	out := make([]RankedCandidate, len(ranked))
	for i, r := range ranked {
		out[i] = RankedCandidate{
			ID:       r.ID,
			Position: r.Position,
			Result:   fromInternalResult(r.Result),
			Err:      r.Err,
		}
	}
	return out, nil
}

// requestWeights picks the per-request weights or the client defaults.
func (c *Client) requestWeights(w *Weights) dommatch.Weights {
	if w == nil {
		return c.weights
	}
	return toInternalWeights(*w)
}

func toInternalWeights(w Weights) dommatch.Weights {
	return dommatch.Weights{
		Skills:           w.Skills,
		Responsibilities: w.Responsibilities,
		JobTitle:         w.JobTitle,
		Experience:       w.Experience,
	}
}

func toRawProfile(in ProfileInput) vectorizeuc.RawProfile {
	return vectorizeuc.RawProfile{
		Skills:            in.Skills,
		Responsibilities:  in.Responsibilities,
		JobTitle:          in.JobTitle,
		YearsOfExperience: in.YearsOfExperience,
	}
}

func fromInternalResult(res matchuc.Result) MatchResult {
	assignments := make([]Assignment, len(res.Assignments))
	for i, a := range res.Assignments {
		assignments[i] = Assignment{
			Category:         Category(a.Category),
			RequirementIndex: a.RequirementIndex,
			RequirementText:  a.RequirementText,
			CandidateIndex:   a.CandidateIndex,
			CandidateText:    a.CandidateText,
			Similarity:       a.Similarity,
			Matched:          a.Matched,
		}
	}

	unmatched := make([]UnmatchedItem, len(res.Unmatched))
	for i, u := range res.Unmatched {
		unmatched[i] = UnmatchedItem{
			Category: Category(u.Category),
			Index:    u.Index,
			Text:     u.Text,
		}
	}

	alternatives := make([]Alternatives, len(res.Alternatives))
	for i, alt := range res.Alternatives {
		cands := make([]AltCandidate, len(alt.Candidates))
		for j, ac := range alt.Candidates {
			cands[j] = AltCandidate{Index: ac.Index, Text: ac.Text, Similarity: ac.Similarity}
		}
		alternatives[i] = Alternatives{
			Category:         Category(alt.Category),
			RequirementIndex: alt.RequirementIndex,
			Candidates:       cands,
		}
	}

	return MatchResult{
		OverallScore: res.OverallScore,
		Breakdown: Breakdown{
			SkillsScore:           res.Breakdown.SkillsScore,
			ResponsibilitiesScore: res.Breakdown.ResponsibilitiesScore,
			TitleScore:            res.Breakdown.TitleScore,
			YearsScore:            res.Breakdown.YearsScore,
		},
		Assignments:  assignments,
		Unmatched:    unmatched,
		Alternatives: alternatives,
		Explanation:  res.Explanation,
	}
}
