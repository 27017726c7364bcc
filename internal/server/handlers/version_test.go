package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestVersionHandlerIncludesBuildMetadata(t *testing.T) {
	SetVersionInfo("1.2.3", "abcd123", "2026-10-01T12:00:00Z")
	SetAppName("citelens-test")
	t.Cleanup(func() {
		SetVersionInfo("dev", "unknown", "unknown")
		SetAppName("citelens")
	})

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	VersionHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp VersionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.App.Name != "citelens-test" {
		t.Fatalf("expected app name citelens-test, got %s", resp.App.Name)
	}

	if resp.App.Version != "1.2.3" || resp.App.Commit != "abcd123" {
		t.Fatalf("unexpected build metadata: %+v", resp.App)
	}

	if resp.Dependencies.Gofulmen == "" || resp.Dependencies.Crucible == "" {
		t.Fatal("expected dependency versions to be populated")
	}
}

func TestSetAppNameIgnoresEmpty(t *testing.T) {
	SetAppName("")
	if AppName == "" {
		t.Fatal("expected app name to keep its previous value")
	}
}
