package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/citelens/citelens/internal/errors"
	"github.com/citelens/citelens/internal/search"
	"github.com/citelens/citelens/internal/server/handlers"
)

func newTestServer(t *testing.T, upstream *httptest.Server, staticDir string) *Server {
	t.Helper()

	opts := Options{Host: "127.0.0.1", Port: 0, StaticDir: staticDir}
	if upstream != nil {
		client, err := search.NewClient(search.ClientOptions{BaseURL: upstream.URL, Timeout: time.Second})
		require.NoError(t, err)
		opts.Resolver = search.NewResolver(client, nil)
	}
	return New(opts)
}

func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer(t, nil, "")

	rec := serve(srv, http.MethodGet, "/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", errorMessage(t, rec))

	rec = serve(srv, http.MethodGet, "/api/search", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", errorMessage(t, rec))
}

func TestServerCheckHealth(t *testing.T) {
	rec := serve(newTestServer(t, nil, ""), http.MethodGet, "/check-health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServerHealthProbesCanBeDisabled(t *testing.T) {
	handlers.InitHealthManager("test")

	enabled := newTestServer(t, nil, "")
	rec := serve(enabled, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	disabled := New(Options{Host: "127.0.0.1", DisableHealthProbes: true})
	for _, path := range []string{"/health", "/health/live", "/health/ready", "/health/startup"} {
		rec := serve(disabled, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "Not found", errorMessage(t, rec))
	}

	rec = serve(disabled, http.MethodGet, "/check-health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello!", rec.Body.String())
}

func TestServerSearchEndToEnd(t *testing.T) {
	var filters []string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		filters = append(filters, filter)
		if filter == `title.search:"Deep Learning"` {
			_, _ = w.Write([]byte(`{"results":[{"id":"https://openalex.org/W1","display_name":"Deep Learning","publication_year":2015,"cited_by_count":50000}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer upstream.Close()

	rec := serve(newTestServer(t, upstream, ""), http.MethodPost, "/api/search", `{"title":"Deep Learning: A Comprehensive Review"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"https://openalex.org/W1","display_name":"Deep Learning","publication_year":2015,"cited_by_count":50000}]`, rec.Body.String())
	assert.Equal(t, []string{
		`title.search:"Deep Learning: A Comprehensive Review"`,
		`title.search:"Deep Learning"`,
	}, filters)
}

func TestServerSearchMirrorsUpstreamStatus(t *testing.T) {
	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	rec := serve(newTestServer(t, upstream, ""), http.MethodPost, "/api/search", `{"title":"Deep Learning: A Review"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, search.MsgUpstreamStatus, errorMessage(t, rec))
	assert.Equal(t, int32(1), calls.Load(), "a failed primary search is not retried")
}

func TestServerSearchValidation(t *testing.T) {
	rec := serve(newTestServer(t, nil, ""), http.MethodPost, "/api/search", `{"title":""}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "no resolver configured")

	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	rec = serve(newTestServer(t, upstream, ""), http.MethodPost, "/api/search", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, search.MsgTitleRequired, errorMessage(t, rec))
}

func TestServerCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>citelens</h1>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "js", "app.js"), []byte("console.log(1)"), 0o644))

	srv := newTestServer(t, nil, dir)

	rec := serve(srv, http.MethodGet, "/public/index.html", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>citelens</h1>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = serve(srv, http.MethodGet, "/public/js/app.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	for _, target := range []string{"/public/missing.css", "/public/js/", "/public/../server.go"} {
		rec = serve(srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}
