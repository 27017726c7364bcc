package search

import (
	"net/url"
	"strings"
)

const (
	worksPath      = "works"
	titleFilterKey = "title.search"
	// SelectFields is the projection requested for every work.
	SelectFields = "id,display_name,publication_year,cited_by_count"
	// TitleDelimiter separates a title from its subtitle.
	TitleDelimiter = ":"
)

// SanitizeTitle removes commas. OpenAlex splits filter clauses on commas,
// even inside quoted values.
func SanitizeTitle(title string) string {
	return strings.ReplaceAll(title, ",", "")
}

// BuildFilter returns the quoted title.search filter for title.
func BuildFilter(title string) string {
	return titleFilterKey + `:"` + SanitizeTitle(title) + `"`
}

// BuildQuery returns the works query URL for title under base. base is not
// modified.
func BuildQuery(base *url.URL, title string) *url.URL {
	target := base.JoinPath(worksPath)
	if !strings.HasPrefix(target.Path, "/") {
		target.Path = "/" + target.Path
		target.RawPath = ""
	}
	params := url.Values{}
	params.Set("filter", BuildFilter(title))
	params.Set("select", SelectFields)
	target.RawQuery = params.Encode()
	return target
}

// FallbackTitle returns the text preceding the first TitleDelimiter and
// whether the delimiter was present.
func FallbackTitle(title string) (string, bool) {
	before, _, found := strings.Cut(title, TitleDelimiter)
	return before, found
}
