package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "Deep Learning", SanitizeTitle("Deep Learning"))
	assert.Equal(t, "Cats Dogs and Mice", SanitizeTitle("Cats, Dogs, and Mice"))
	assert.Equal(t, "", SanitizeTitle(",,,"))
}

func TestBuildFilter(t *testing.T) {
	assert.Equal(t, `title.search:"Attention Is All You Need"`, BuildFilter("Attention Is All You Need"))
	assert.Equal(t, `title.search:"Cats Dogs and Mice"`, BuildFilter("Cats, Dogs, and Mice"))
	assert.Equal(t, `title.search:"Deep Learning: A Review"`, BuildFilter("Deep Learning: A Review"))
}

func TestBuildQuery(t *testing.T) {
	base, err := url.Parse("https://api.openalex.org")
	require.NoError(t, err)

	target := BuildQuery(base, "Cats, Dogs & Mice?")

	assert.Equal(t, "https", target.Scheme)
	assert.Equal(t, "api.openalex.org", target.Host)
	assert.Equal(t, "/works", target.Path)

	params := target.Query()
	assert.Equal(t, `title.search:"Cats Dogs & Mice?"`, params.Get("filter"))
	assert.Equal(t, SelectFields, params.Get("select"))

	assert.NotContains(t, target.RawQuery, "&Mice", "ampersand must be percent-encoded")
	assert.NotContains(t, target.RawQuery, " ", "spaces must be encoded")
	assert.Equal(t, "https://api.openalex.org", base.String(), "base must not be modified")
}

func TestBuildQuery_BaseWithPath(t *testing.T) {
	base, err := url.Parse("http://127.0.0.1:8080/openalex/")
	require.NoError(t, err)

	target := BuildQuery(base, "Graph Neural Networks")
	assert.Equal(t, "/openalex/works", target.Path)
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		title     string
		want      string
		wantFound bool
	}{
		{title: "Deep Learning: A Comprehensive Review", want: "Deep Learning", wantFound: true},
		{title: "A: B: C", want: "A", wantFound: true},
		{title: ": leading", want: "", wantFound: true},
		{title: "No delimiter here", want: "No delimiter here", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, found := FallbackTitle(tt.title)
			assert.Equal(t, tt.wantFound, found)
			if found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
