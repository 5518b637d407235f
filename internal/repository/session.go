package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kpom/kpom/internal/model"
)

// CreateSession appends one completed focus session to the log.
// Sessions are immutable after insert; there is no update or delete.
func (r *Repository) CreateSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, method_id, focus_minutes, finished_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.MethodID,
		session.FocusMinutes,
		session.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// ListSessionsSince returns one user's sessions finishing at or after
// the cutoff, oldest first. The log is append-only, so a single query
// is a consistent snapshot for aggregation.
func (r *Repository) ListSessionsSince(ctx context.Context, userID string, since time.Time) ([]model.Session, error) {
	query := `
		SELECT id, user_id, method_id, focus_minutes, finished_at
		FROM sessions
		WHERE user_id = $1 AND finished_at >= $2
		ORDER BY finished_at ASC
	`

	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.Session, 0)
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.MethodID, &s.FocusMinutes, &s.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return sessions, nil
}
