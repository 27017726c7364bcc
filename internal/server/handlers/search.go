package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	apperrors "github.com/citelens/citelens/internal/errors"
	"github.com/citelens/citelens/internal/search"
)

// MaxSearchBodyBytes bounds the POST /api/search request body.
const MaxSearchBodyBytes = 64 << 10

// MsgInvalidJSON is returned when the request body cannot be decoded.
const MsgInvalidJSON = "Invalid JSON body"

// TitleResolver resolves a search request into works.
type TitleResolver interface {
	Resolve(ctx context.Context, req search.Request) ([]search.Result, error)
}

// SearchHandler serves POST /api/search.
type SearchHandler struct {
	resolver TitleResolver
}

// NewSearchHandler returns a handler backed by resolver.
func NewSearchHandler(resolver TitleResolver) *SearchHandler {
	return &SearchHandler{resolver: resolver}
}

// ServeHTTP decodes {"title": ...}, resolves it and writes the result array.
// Every failure is written as {"error": "<message>"}.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.resolver == nil {
		respondWithError(w, r, apperrors.NewServiceUnavailableError("Search is not configured"))
		return
	}

	req, err := decodeSearchRequest(w, r)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	results, err := h.resolver.Resolve(r.Context(), req)
	if err != nil {
		respondWithError(w, r, searchErrorEnvelope(r.Context(), err))
		return
	}
	if results == nil {
		results = []search.Result{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(results)
}

// decodeSearchRequest reads the JSON body. An empty body is an absent title
// so validation reports it as missing; unknown fields are ignored. The body
// must hold a single JSON value.
func decodeSearchRequest(w http.ResponseWriter, r *http.Request) (search.Request, error) {
	var req search.Request

	body := http.MaxBytesReader(w, r.Body, MaxSearchBodyBytes)
	defer body.Close() // nolint:errcheck // request body is owned by net/http

	decoder := json.NewDecoder(body)
	err := decoder.Decode(&req)
	if stderrors.Is(err, io.EOF) {
		return req, nil
	}
	if err == nil {
		if trailing := decoder.Decode(&struct{}{}); !stderrors.Is(trailing, io.EOF) {
			err = trailing
			if err == nil {
				err = errTrailingData
			}
		}
	}
	if err == nil {
		return req, nil
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return search.Request{}, apperrors.WrapInvalidInput(r.Context(), err, "Request body too large")
	}
	return search.Request{}, apperrors.WrapInvalidInput(r.Context(), err, MsgInvalidJSON)
}

var errTrailingData = stderrors.New("unexpected data after JSON body")

// searchErrorEnvelope maps a resolver failure onto the error envelope that
// carries its HTTP status. The client-facing message is the search error's
// Message; the cause stays in the envelope context for logs.
func searchErrorEnvelope(ctx context.Context, err error) error {
	searchErr, ok := search.AsError(err)
	if !ok {
		return apperrors.WrapInternal(ctx, err, "Internal server error")
	}

	switch searchErr.Kind {
	case search.KindInvalidRequest:
		return apperrors.WrapInvalidInput(ctx, err, searchErr.Message)
	case search.KindUpstreamStatus:
		return apperrors.WrapUpstreamStatus(ctx, err, searchErr.Status, searchErr.Message)
	case search.KindTransport:
		return apperrors.WrapExternalService(ctx, err, searchErr.Message)
	case search.KindDecode:
		return apperrors.WrapDataProcessing(ctx, err, searchErr.Message)
	default:
		return apperrors.WrapInternal(ctx, err, "Internal server error")
	}
}
