package search

import (
	"context"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/citelens/citelens/internal/metrics"
)

// Attempt labels which pass of a resolution produced an upstream call.
type Attempt string

const (
	AttemptPrimary  Attempt = "primary"
	AttemptFallback Attempt = "fallback"
)

// Outcome labels for upstream calls.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
)

// Resolver turns a Request into a result list, issuing at most two upstream
// searches. It holds no per-request state and is safe for concurrent use.
type Resolver struct {
	Searcher Searcher
	Logger   *logging.Logger
}

// NewResolver returns a Resolver backed by searcher.
func NewResolver(searcher Searcher, logger *logging.Logger) *Resolver {
	return &Resolver{Searcher: searcher, Logger: logger}
}

// Resolve validates req and searches for its title. When the full title
// finds nothing and contains TitleDelimiter, the text before the first
// delimiter is searched once; that second outcome is returned as is. A
// failure on the first search is returned immediately.
func (r *Resolver) Resolve(ctx context.Context, req Request) ([]Result, error) {
	title, err := ValidateTitle(req)
	if err != nil {
		r.logFailure(AttemptPrimary, err)
		return nil, err
	}

	r.debug("Resolving title", zap.String("title", title))

	results, err := r.search(ctx, AttemptPrimary, title)
	if err != nil || len(results) > 0 {
		return results, err
	}

	prefix, ok := FallbackTitle(title)
	if !ok {
		return results, nil
	}

	metrics.RecordSearchFallback()
	r.info("No results for full title, retrying with text before delimiter",
		zap.String("title", title),
		zap.String("fallback_title", prefix))

	return r.search(ctx, AttemptFallback, prefix)
}

func (r *Resolver) search(ctx context.Context, attempt Attempt, title string) ([]Result, error) {
	start := time.Now()
	results, err := r.Searcher.Search(ctx, title)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordUpstreamSearch(string(attempt), outcomeOf(err), duration)
		r.logFailure(attempt, err)
		return nil, err
	}

	outcome := OutcomeSuccess
	if len(results) == 0 {
		outcome = OutcomeEmpty
	}
	metrics.RecordUpstreamSearch(string(attempt), outcome, duration)
	metrics.RecordSearchResults(string(attempt), len(results))

	r.debug("Upstream search completed",
		zap.String("attempt", string(attempt)),
		zap.String("outcome", outcome),
		zap.Int("results", len(results)),
		zap.Duration("duration", duration))

	if results == nil {
		results = []Result{}
	}
	return results, nil
}

func outcomeOf(err error) string {
	if searchErr, ok := AsError(err); ok {
		return string(searchErr.Kind)
	}
	return "internal"
}

// logFailure records the failure category. Invalid requests are routine and
// logged at info; upstream-caused failures at warn.
func (r *Resolver) logFailure(attempt Attempt, err error) {
	if r.Logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("attempt", string(attempt)),
		zap.Error(err),
	}

	searchErr, ok := AsError(err)
	if !ok {
		r.Logger.Error("Search failed", append(fields, zap.String("error_kind", "internal"))...)
		return
	}

	fields = append(fields,
		zap.String("error_kind", string(searchErr.Kind)),
		zap.Int("status", searchErr.Status))

	if searchErr.Kind == KindInvalidRequest {
		r.Logger.Info("Search request rejected", fields...)
		return
	}
	r.Logger.Warn("Upstream search failed", fields...)
}

func (r *Resolver) debug(msg string, fields ...zap.Field) {
	if r.Logger != nil {
		r.Logger.Debug(msg, fields...)
	}
}

func (r *Resolver) info(msg string, fields ...zap.Field) {
	if r.Logger != nil {
		r.Logger.Info(msg, fields...)
	}
}
