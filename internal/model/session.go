// Package model defines domain entities for the application.
package model

import "time"

// Study method identifiers. These are the fixed timer presets the
// client can report sessions for.
const (
	MethodPomodoro = "pomodoro"
	Method5217     = "52-17"
	Method9020     = "90-20"
)

// MethodPreset describes the focus/break durations of a study method.
type MethodPreset struct {
	ID           string
	Name         string
	FocusMinutes int
	BreakMinutes int
}

// MethodPresets maps method IDs to their configured durations.
var MethodPresets = map[string]MethodPreset{
	MethodPomodoro: {ID: MethodPomodoro, Name: "Pomodoro", FocusMinutes: 25, BreakMinutes: 5},
	Method5217:     {ID: Method5217, Name: "52 / 17", FocusMinutes: 52, BreakMinutes: 17},
	Method9020:     {ID: Method9020, Name: "90 / 20", FocusMinutes: 90, BreakMinutes: 20},
}

// IsValidMethod reports whether id names a known study method.
func IsValidMethod(id string) bool {
	_, ok := MethodPresets[id]
	return ok
}

// Session is one completed focus phase. Records are append-only:
// created exactly once when a focus countdown reaches zero, never
// updated or deleted.
type Session struct {
	ID           string    `json:"id"` // ULID (time-sortable)
	UserID       string    `json:"user_id"`
	MethodID     string    `json:"method_id"`
	FocusMinutes int       `json:"focus_minutes"`
	FinishedAt   time.Time `json:"finished_at"` // server time at insert
}
