package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxInboundRequestIDLength bounds client-supplied IDs before they reach logs.
const maxInboundRequestIDLength = 128

type requestIDContextKey string

const RequestIDContextKey requestIDContextKey = "request_id"

// RequestID assigns a correlation ID to every request. An ID set by chi's
// RequestID middleware wins, then a well-formed X-Request-ID header, then a
// fresh UUID. The ID is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			requestID = inboundRequestID(r.Header.Get(RequestIDHeader))
		}
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// inboundRequestID returns the header value when it is short and printable,
// otherwise an empty string.
func inboundRequestID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > maxInboundRequestIDLength {
		return ""
	}
	for _, c := range value {
		if c < 0x21 || c > 0x7e {
			return ""
		}
	}
	return value
}

// GetRequestID returns the request ID from our context key or chi's.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return requestID
	}
	return middleware.GetReqID(ctx)
}
