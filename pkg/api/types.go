package api

// Suggestion is one quick-search completion. Name carries the alias string
// that matched, so callers can show whether the literal name or the
// display name hit.
type Suggestion struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SuggestResponse is the payload of the suggestion endpoint.
type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// TopQueriesResponse is the payload of the history endpoint.
type TopQueriesResponse struct {
	Queries []TopQuery `json:"queries"`
}

// TopQuery is one aggregated history entry.
type TopQuery struct {
	Query    string `json:"query"`
	Searches int    `json:"searches"`
}
