package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups                uint64
	LoginSuccesses         uint64
	LoginFailures          uint64
	PasswordChanges        uint64
	PasswordResets         uint64
	SessionsRecorded       uint64
	SummariesComputed      uint64
	SummaryDurationCount   uint64
	SummaryDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	signups                uint64
	loginSuccesses         uint64
	loginFailures          uint64
	passwordChanges        uint64
	passwordResets         uint64
	sessionsRecorded       uint64
	summariesComputed      uint64
	summaryDurationCount   uint64
	summaryDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Signups:                atomic.LoadUint64(&m.signups),
		LoginSuccesses:         atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:          atomic.LoadUint64(&m.loginFailures),
		PasswordChanges:        atomic.LoadUint64(&m.passwordChanges),
		PasswordResets:         atomic.LoadUint64(&m.passwordResets),
		SessionsRecorded:       atomic.LoadUint64(&m.sessionsRecorded),
		SummariesComputed:      atomic.LoadUint64(&m.summariesComputed),
		SummaryDurationCount:   atomic.LoadUint64(&m.summaryDurationCount),
		SummaryDurationTotalNs: atomic.LoadInt64(&m.summaryDurationTotalNs),
	}
}

// IncSignup increments the signup counter.
func (m *InMemoryRecorder) IncSignup() {
	atomic.AddUint64(&m.signups, 1)
}

// IncLogin increments the login counter for the given status.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		atomic.AddUint64(&m.loginSuccesses, 1)
		return
	}
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncPasswordChange increments the password change counter.
func (m *InMemoryRecorder) IncPasswordChange() {
	atomic.AddUint64(&m.passwordChanges, 1)
}

// IncPasswordReset increments the password reset counter.
func (m *InMemoryRecorder) IncPasswordReset() {
	atomic.AddUint64(&m.passwordResets, 1)
}

// IncSessionRecorded increments the recorded session counter.
func (m *InMemoryRecorder) IncSessionRecorded(methodID string) {
	atomic.AddUint64(&m.sessionsRecorded, 1)
}

// IncSummaryComputed increments the summary counter.
func (m *InMemoryRecorder) IncSummaryComputed() {
	atomic.AddUint64(&m.summariesComputed, 1)
}

// ObserveSummaryDuration records summary computation duration.
func (m *InMemoryRecorder) ObserveSummaryDuration(duration time.Duration) {
	atomic.AddUint64(&m.summaryDurationCount, 1)
	atomic.AddInt64(&m.summaryDurationTotalNs, duration.Nanoseconds())
}
