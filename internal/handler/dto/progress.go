package dto

import (
	"time"

	"github.com/kpom/kpom/internal/model"
)

// RecordSessionRequest represents the body for logging one completed
// focus session. The completion timestamp is server-assigned and is
// deliberately not part of the request.
type RecordSessionRequest struct {
	MethodID     string `json:"methodId"`
	FocusMinutes int    `json:"focusMinutes"`
}

// SessionResponse represents a stored session in API responses.
type SessionResponse struct {
	ID           string    `json:"id"`
	MethodID     string    `json:"methodId"`
	FocusMinutes int       `json:"focusMinutes"`
	FinishedAt   time.Time `json:"finishedAt"`
}

// ToSessionResponse converts a Session model to its DTO.
func ToSessionResponse(s *model.Session) *SessionResponse {
	return &SessionResponse{
		ID:           s.ID,
		MethodID:     s.MethodID,
		FocusMinutes: s.FocusMinutes,
		FinishedAt:   s.FinishedAt,
	}
}
