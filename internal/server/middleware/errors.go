package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/fulmenhq/gofulmen/errors"
	"go.uber.org/zap"

	"github.com/citelens/citelens/internal/metrics"
	"github.com/citelens/citelens/internal/observability"
)

// RecoveredMessage is the body text returned after a handler panic.
const RecoveredMessage = "Internal server error"

// Recovery turns handler panics into a 500 with the standard error body.
// The panic value and stack go to the server log only.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			panicErr := errors.NewErrorEnvelope("INTERNAL_ERROR", RecoveredMessage).
				WithCorrelationID(GetRequestID(r.Context()))
			panicErr, _ = panicErr.WithContext(map[string]interface{}{
				"panic":       fmt.Sprintf("%v", rec),
				"stack_trace": string(debug.Stack()),
			})
			panicErr, _ = panicErr.WithSeverity(errors.SeverityCritical)

			metrics.RecordPanic()
			logPanic(r, panicErr)

			writeErrorResponse(w, panicErr.Message, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

func logPanic(r *http.Request, envelope *errors.ErrorEnvelope) {
	if observability.ServerLogger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("error_code", envelope.Code),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", envelope.CorrelationID),
	}
	for key, value := range envelope.Context {
		fields = append(fields, zap.Any(key, value))
	}
	observability.ServerLogger.Error("recovered from handler panic", fields...)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeErrorResponse writes the error body directly; the errors package
// imports middleware, so it cannot be used here.
func writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
