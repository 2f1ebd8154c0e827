package metrics

import (
	"time"

	"github.com/callpace/callpace/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	// Pacing metrics
	SlotWaitsTotal   = "pace_slot_waits_total"
	SlotWaitDuration = "pace_slot_wait_duration_ms"

	// Fetch metrics
	FetchesTotal = "fetch_requests_total"

	// Health check metrics
	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
)

// RecordSlotWait records one slot wait against a host, including the time
// spent blocked (zero when the slot was immediately available).
func RecordSlotWait(host string, waited time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	labels := map[string]string{"host": host}
	_ = observability.TelemetrySystem.Counter(SlotWaitsTotal, 1, labels)
	_ = observability.TelemetrySystem.Histogram(SlotWaitDuration, waited, labels)
}

// RecordFetch records a completed paced fetch with its outcome label.
func RecordFetch(host string, outcome string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			FetchesTotal,
			1,
			map[string]string{
				"host":    host,
				"outcome": outcome,
			},
		)
	}
}

// RecordHealthCheck records a probe execution with its aggregate status
// (healthy, degraded or unhealthy).
func RecordHealthCheck(checkName, status string, duration time.Duration) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp).
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}
