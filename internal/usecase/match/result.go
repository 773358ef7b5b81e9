package match

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

// AssignmentRecord is one requirement-to-candidate pairing chosen by the
// optimal assignment, annotated for explainability.
type AssignmentRecord struct {
	Category         Category
	RequirementIndex int
	RequirementText  string
	CandidateIndex   int
	CandidateText    string
	Similarity       float64
	Matched          bool // similarity reached the category threshold
}

// ItemRef points back to a requirement item by its source-list position.
type ItemRef struct {
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
// similarity, regardless of the assignment outcome.
type Alternatives struct {
	Category         Category
	RequirementIndex int
	Candidates       []AltCandidate
}

// Diagnostics carries raw solver outputs that are not part of the reported
// category scores. The mean assignment similarity is kept for debugging the
// threshold-based scores, never surfaced as a score itself.
type Diagnostics struct {
	SkillsMeanSimilarity           float64
	ResponsibilitiesMeanSimilarity float64
}

// Result is the explainable outcome of one requirement-vs-candidate match.
type Result struct {
	OverallScore float64 // convex combination of sub-scores, in [0,100]
	Breakdown    Breakdown
	Assignments  []AssignmentRecord
	Unmatched    []ItemRef
	Alternatives []Alternatives
	Explanation  string
	Diagnostics  Diagnostics
}
