package matchdex

// ProfileInput is a raw structured profile before vectorization.
type ProfileInput struct {
	Skills            []string
	Responsibilities  []string
	JobTitle          string
	YearsOfExperience int
}

// ProfileRef names one side of a match: either a stored profile by ID or an
// inline raw profile to vectorize on the fly. Exactly one must be set.
type ProfileRef struct {
	ID     string
	Inline *ProfileInput
}

// ProfileInfo is a stored profile as returned by the profile service.
type ProfileInfo struct {
	ID                string
	Skills            []string
	Responsibilities  []string
	JobTitle          string
	YearsOfExperience int
	Dimension         int
}

// Weights are relative category weights for score combination. Values are
// arbitrary positive units, normalized to proportions before use.
type Weights struct {
	Skills           float64
	Responsibilities float64
	JobTitle         float64
	Experience       float64
}

// MatchRequest is one requirement-vs-candidate comparison.
type MatchRequest struct {
	Requirement ProfileRef
	Candidate   ProfileRef
	Weights     *Weights // nil = client defaults
}

// RankCandidate is one candidate in a ranking batch. OutID is carried
// through to the ranked output; for stored profiles it defaults to the
// profile ID.
type RankCandidate struct {
	ID     string
	Inline *ProfileInput
	OutID  string
}

// RankRequest is one requirement ranked against a batch of candidates.
type RankRequest struct {
	Requirement ProfileRef
	Candidates  []RankCandidate
	Weights     *Weights // nil = client defaults
}

// Category identifies a scored matching category.
type Category string

// Matching categories.
const (
	CategorySkills           Category = "skills"
	CategoryResponsibilities Category = "responsibilities"
	CategoryJobTitle         Category = "job_title"
	CategoryExperience       Category = "experience"
)

// Breakdown holds the per-category sub-scores. Skills, responsibilities and
// title scores are percentages in [0,100]; YearsScore is the raw experience
// ratio in [0,1].
type Breakdown struct {
	SkillsScore           float64
	ResponsibilitiesScore float64
	TitleScore            float64
	YearsScore            float64
}

// Assignment is one requirement-to-candidate pairing chosen by the optimal
// assignment.
type Assignment struct {
	Category         Category
	RequirementIndex int
	RequirementText  string
	CandidateIndex   int
	CandidateText    string
	Similarity       float64
	Matched          bool
}

// UnmatchedItem points back to a requirement item left without a pairing
// above the threshold.
type UnmatchedItem struct {
	Category Category
	Index    int
	Text     string
}

// AltCandidate is one near-miss candidate item for a requirement.
type AltCandidate struct {
	Index      int
	Text       string
	Similarity float64
}

// Alternatives lists the top candidate items for one requirement by raw
// similarity.
type Alternatives struct {
	Category         Category
	RequirementIndex int
	Candidates       []AltCandidate
}

// MatchResult is the explainable outcome of one comparison.
type MatchResult struct {
	OverallScore float64 // in [0,100]
	Breakdown    Breakdown
	Assignments  []Assignment
	Unmatched    []UnmatchedItem
	Alternatives []Alternatives
	Explanation  string
}

// RankedCandidate is one entry of the ranked output. Err is set when this
// candidate's comparison failed; the rest of the batch is unaffected.
type RankedCandidate struct {
	ID       string
	Position int // original position in the input batch
	Result   MatchResult
	Err      error
}
