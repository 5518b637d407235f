package handler

import (
	"fmt"
	"net/http"

	"github.com/kpom/kpom/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "kpom_signups_total %d\n", snap.Signups)
	writeMetric(w, "kpom_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "kpom_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)
	writeMetric(w, "kpom_password_changes_total %d\n", snap.PasswordChanges)
	writeMetric(w, "kpom_password_resets_total %d\n", snap.PasswordResets)

	writeMetric(w, "kpom_sessions_recorded_total %d\n", snap.SessionsRecorded)

	writeMetric(w, "kpom_summaries_computed_total %d\n", snap.SummariesComputed)
	writeMetric(w, "kpom_summary_duration_seconds_count %d\n", snap.SummaryDurationCount)
	writeMetric(w, "kpom_summary_duration_seconds_sum %.6f\n", float64(snap.SummaryDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
