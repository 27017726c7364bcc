package server

import (
	"net/http"

	apperrors "github.com/citelens/citelens/internal/errors"
)

// HandleError writes err with the service's error body.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}
