package models

// SearchResult is one entry returned by the web search collaborator.
// Results live for a single render pass and are never persisted.
type SearchResult struct {
	Title   string `json:"title"`
	Href    string `json:"href"`
	Snippet string `json:"snippet"`
}

// SearchStatus classifies how a query fared across all search backends.
type SearchStatus string

const (
	// SearchFound means at least one backend returned results.
	SearchFound SearchStatus = "found"
	// SearchEmptyConfirmed means at least one backend answered successfully
	// but every answer was empty. The web genuinely has nothing for us.
	SearchEmptyConfirmed SearchStatus = "empty_confirmed"
	// SearchAllBackendsFailed means every backend attempt errored out.
	// Distinct from EmptyConfirmed so the caller never confuses "search is
	// down" with "searched and found nothing".
	SearchAllBackendsFailed SearchStatus = "all_backends_failed"
)

// SearchOutcome is the tri-state result of one evidence query.
type SearchOutcome struct {
	Status      SearchStatus   `json:"status"`
	Results     []SearchResult `json:"results,omitempty"`
	Diagnostics []string       `json:"diagnostics,omitempty"` // one line per skipped backend
}
