package metrics

import (
	"testing"
	"time"

	"github.com/fulmenhq/gofulmen/telemetry"
	telemetrytesting "github.com/fulmenhq/gofulmen/telemetry/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citelens/citelens/internal/observability"
)

func setupTelemetry(t *testing.T) *telemetrytesting.FakeCollector {
	t.Helper()

	collector := telemetrytesting.NewFakeCollector()
	sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: true, Emitter: collector})
	require.NoError(t, err)

	original := observability.TelemetrySystem
	observability.TelemetrySystem = sys
	t.Cleanup(func() {
		observability.TelemetrySystem = original
	})

	return collector
}

func TestRecordUpstreamSearchEmitsCounterAndDuration(t *testing.T) {
	collector := setupTelemetry(t)

	RecordUpstreamSearch("primary", "success", 15*time.Millisecond)

	assert.Greater(t, collector.CountMetricsByName(UpstreamSearchesTotal), 0)
	assert.Greater(t, collector.CountMetricsByName(UpstreamSearchDuration), 0)
}

func TestRecordSearchFallbackAndResults(t *testing.T) {
	collector := setupTelemetry(t)

	RecordSearchFallback()
	RecordSearchResults("fallback", 2)

	assert.Greater(t, collector.CountMetricsByName(FallbackSearchesTotal), 0)
	assert.Greater(t, collector.CountMetricsByName(SearchResultsReturned), 0)
}

func TestRecordersAreNoOpsWithoutTelemetry(t *testing.T) {
	original := observability.TelemetrySystem
	observability.TelemetrySystem = nil
	t.Cleanup(func() {
		observability.TelemetrySystem = original
	})

	assert.NotPanics(t, func() {
		RecordUpstreamSearch("primary", "transport", time.Second)
		RecordSearchFallback()
		RecordSearchResults("primary", 0)
		RecordError("INVALID_INPUT", 400)
		RecordPanic()
		RecordErrorByEndpoint("/api/search", "INVALID_INPUT")
		SetServerStartTime(time.Now().Unix())
		RecordHealthCheck("upstream", true, time.Millisecond)
	})
}
