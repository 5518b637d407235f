// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth metrics
	IncSignup()
	IncLogin(status string) // status: "success" or "failure"
	IncPasswordChange()
	IncPasswordReset()

	// Session log metrics
	IncSessionRecorded(methodID string)

	// Aggregation metrics
	IncSummaryComputed()
	ObserveSummaryDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
