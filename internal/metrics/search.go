package metrics

import (
	"strconv"
	"time"

	"github.com/citelens/citelens/internal/observability"
)

// Search metrics following Prometheus conventions
const (
	UpstreamSearchesTotal   = "search_upstream_requests_total"
	UpstreamSearchDuration  = "search_upstream_request_duration_ms"
	FallbackSearchesTotal   = "search_fallback_total"
	SearchResultsReturned   = "search_results_returned"
	ServerStartTime         = "app_server_start_time_seconds"
	HealthCheckTotal        = "app_health_check_total"
	HealthCheckDurationName = "app_health_check_duration_ms"
)

// RecordUpstreamSearch records one upstream call with its attempt
// (primary/fallback) and outcome (success, empty or a failure kind).
func RecordUpstreamSearch(attempt, outcome string, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	labels := map[string]string{
		"attempt": attempt,
		"outcome": outcome,
	}

	_ = observability.TelemetrySystem.Counter(UpstreamSearchesTotal, 1, labels)
	_ = observability.TelemetrySystem.Histogram(UpstreamSearchDuration, duration, labels)
}

// RecordSearchFallback counts colon-truncation retries.
func RecordSearchFallback() {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(FallbackSearchesTotal, 1, nil)
	}
}

// RecordSearchResults records the size of a successful result list.
func RecordSearchResults(attempt string, count int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			SearchResultsReturned,
			float64(count),
			map[string]string{"attempt": attempt},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(ServerStartTime, float64(timestamp), nil)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	_ = observability.TelemetrySystem.Counter(
		HealthCheckTotal,
		1,
		map[string]string{
			"check":   checkName,
			"healthy": strconv.FormatBool(healthy),
		},
	)
	_ = observability.TelemetrySystem.Histogram(
		HealthCheckDurationName,
		duration,
		map[string]string{"check": checkName},
	)
}
