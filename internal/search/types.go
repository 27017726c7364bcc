// Package search resolves a free-text publication title against the OpenAlex
// works API. It validates the title, builds a title.search filter query, runs
// it upstream and, when the full title finds nothing, retries once with the
// text preceding the first colon.
package search

// Request is the inbound search payload. Title is a pointer so an absent
// field and an explicit null can both be rejected.
type Request struct {
	Title *string `json:"title"`
}

// Result is one work returned by the upstream, reduced to the projected fields.
type Result struct {
	ID              string `json:"id" yaml:"id"`
	DisplayName     string `json:"display_name" yaml:"display_name"`
	PublicationYear int    `json:"publication_year" yaml:"publication_year"`
	CitedByCount    int    `json:"cited_by_count" yaml:"cited_by_count"`
}

// TitleRequest builds a Request carrying the given title.
func TitleRequest(title string) Request {
	return Request{Title: &title}
}
