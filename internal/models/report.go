package models

// Verdict is the three-tier classification derived from the evidence score.
type Verdict string

const (
	VerdictCertified    Verdict = "certified"
	VerdictInsufficient Verdict = "insufficient_evidence"
	VerdictNotFound     Verdict = "not_found"
)

// AnalyzeRequest is the payload for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// StepFinding records the outcome of one evidence step (one templated query).
type StepFinding struct {
	Step       string        `json:"step"`
	Query      string        `json:"query"`
	Status     SearchStatus  `json:"status"`
	Matched    bool          `json:"matched"`
	Evidence   *SearchResult `json:"evidence,omitempty"`
	Points     int           `json:"points"` // points actually applied, 0 when gated by a stronger signal's ceiling
	ManualLink string        `json:"manual_link"`
	Notes      []string      `json:"notes,omitempty"`
}

// Report is the result of a full evidence analysis for one brand/model pair.
type Report struct {
	Brand   string        `json:"brand"`
	Model   string        `json:"model"`
	Score   int           `json:"score"` // always within [0,100]
	Verdict Verdict       `json:"verdict"`
	Steps   []StepFinding `json:"steps"`

	// SearchDegraded is true when at least one step lost every backend, so a
	// low score may mean "search unavailable" rather than "no evidence".
	SearchDegraded bool `json:"search_degraded"`
}
