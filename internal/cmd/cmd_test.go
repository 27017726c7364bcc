package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citelens/citelens/internal/search"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "citelens "), "got %q", out)
}

func TestSearchCommand_FallbackJSON(t *testing.T) {
	var (
		mu      sync.Mutex
		filters []string
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		filters = append(filters, r.URL.Query().Get("filter"))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Query().Get("filter"), "subtitle") {
			_, _ = w.Write([]byte(`{"results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":"https://openalex.org/W1","display_name":"Deep Learning","publication_year":2015,"cited_by_count":42}]}`))
	}))
	defer upstream.Close()

	out, err := execute(t, "search", "--upstream-url", upstream.URL, "-o", "json", "Deep", "Learning:", "a", "subtitle")
	require.NoError(t, err)

	var results []search.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Deep Learning", results[0].DisplayName)
	assert.Equal(t, 2015, results[0].PublicationYear)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		`title.search:"Deep Learning: a subtitle"`,
		`title.search:"Deep Learning"`,
	}, filters)
}

func TestSearchCommand_InvalidInput(t *testing.T) {
	_, err := execute(t, "search", "-o", "json", "")
	require.Error(t, err)
	assert.True(t, search.IsKind(err, search.KindInvalidRequest))

	_, err = execute(t, "search", "-o", "csv", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestEnsureTrailingNewline(t *testing.T) {
	assert.Equal(t, "[]\n", ensureTrailingNewline("[]"))
	assert.Equal(t, "x\n", ensureTrailingNewline("x\n"))
}

func TestSearchDeadlineUsesEffectiveClientTimeout(t *testing.T) {
	client, err := search.NewClient(search.ClientOptions{Timeout: 0})
	require.NoError(t, err)
	assert.Equal(t, 2*search.DefaultTimeout+time.Second, searchDeadline(client))

	client, err = search.NewClient(search.ClientOptions{Timeout: 3 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, searchDeadline(client))
}
