package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSignup is a no-op.
func (n *NoopRecorder) IncSignup() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncPasswordChange is a no-op.
func (n *NoopRecorder) IncPasswordChange() {}

// IncPasswordReset is a no-op.
func (n *NoopRecorder) IncPasswordReset() {}

// IncSessionRecorded is a no-op.
func (n *NoopRecorder) IncSessionRecorded(methodID string) {}

// IncSummaryComputed is a no-op.
func (n *NoopRecorder) IncSummaryComputed() {}

// ObserveSummaryDuration is a no-op.
func (n *NoopRecorder) ObserveSummaryDuration(duration time.Duration) {}
