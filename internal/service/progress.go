package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kpom/kpom/internal/metrics"
	"github.com/kpom/kpom/internal/model"
	"github.com/kpom/kpom/internal/progress"
)

// Progress service errors.
var (
	ErrMethodRequired      = errors.New("methodId is required")
	ErrUnknownMethod       = errors.New("unknown study method")
	ErrFocusMinutesInvalid = errors.New("focusMinutes must be a positive integer")
)

// SessionStore is the session log the progress service depends on.
// *repository.Repository satisfies it.
type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	ListSessionsSince(ctx context.Context, userID string, since time.Time) ([]model.Session, error)
}

// ProgressService records completed sessions and computes summaries.
// It is stateless between calls; summaries are recomputed from the
// log on every request and never cached.
type ProgressService struct {
	sessions SessionStore
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewProgressService creates a new ProgressService.
func NewProgressService(sessions SessionStore, recorder metrics.Recorder) *ProgressService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ProgressService{
		sessions: sessions,
		metrics:  recorder,
		now:      time.Now,
	}
}

// RecordSession appends one completed focus session. The completion
// timestamp is server time at the moment of the call, not anything
// the client supplies.
func (s *ProgressService) RecordSession(ctx context.Context, userID, methodID string, focusMinutes int) (*model.Session, error) {
	if methodID == "" {
		return nil, ErrMethodRequired
	}
	if !model.IsValidMethod(methodID) {
		return nil, ErrUnknownMethod
	}
	if focusMinutes <= 0 {
		return nil, ErrFocusMinutesInvalid
	}

	session := &model.Session{
		ID:           ulid.Make().String(),
		UserID:       userID,
		MethodID:     methodID,
		FocusMinutes: focusMinutes,
		FinishedAt:   s.now(),
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	s.metrics.IncSessionRecorded(methodID)
	return session, nil
}

// Summary computes the aggregated progress view for one user. The
// underlying read is a single query, so concurrent summaries see a
// consistent snapshot of the append-only log. A failed read surfaces
// as an error with no retry; retry policy belongs to the caller.
func (s *ProgressService) Summary(ctx context.Context, userID string) (*model.Summary, error) {
	now := s.now()
	since := now.AddDate(0, 0, -progress.HistoryWindowDays)

	sessions, err := s.sessions.ListSessionsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load session log: %w", err)
	}

	start := time.Now()
	summary := progress.BuildSummary(sessions, now)

	s.metrics.IncSummaryComputed()
	s.metrics.ObserveSummaryDuration(time.Since(start))

	return &summary, nil
}
