package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/citelens/citelens/internal/errors"
)

const staticPrefix = "/public/"

// staticHandler serves regular files below dir. Directories and missing
// files answer with the JSON not-found body.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Clean against a rooted path so ".." cannot leave dir.
		rel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(r.URL.Path, staticPrefix)), "/")
		if rel == "" {
			HandleError(w, r, apperrors.NewNotFoundError("Not found"))
			return
		}

		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			HandleError(w, r, apperrors.NewNotFoundError("Not found"))
			return
		}
		defer f.Close() // nolint:errcheck // read-only file

		info, err := f.Stat()
		if err != nil || !info.Mode().IsRegular() {
			HandleError(w, r, apperrors.NewNotFoundError("Not found"))
			return
		}

		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	}
}
