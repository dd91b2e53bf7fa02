package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgramRow is a persisted training program: the parameters a schedule is
// generated from, plus who it belongs to.
type ProgramRow struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	CoachName     string         `json:"coach_name"`
	AthleteName   string         `json:"athlete_name"`
	StartDate     time.Time      `json:"start_date"`
	DurationWeeks int            `json:"duration_weeks"`
	Weekdays      []time.Weekday `json:"weekdays"`
	CreatedAt     time.Time      `json:"created_at"`
}

// SessionRow is one concrete scheduled training occurrence. Completed and
// Cancelled are flipped by external workflows (the completion screen, the
// cancel dialog); StartedAt is set by the explicit start-session action
// that makes a session in-progress. The scheduling core never writes any
// of them.
type SessionRow struct {
	ID              uuid.UUID  `json:"id"`
	ProgramID       uuid.UUID  `json:"program_id"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Completed       bool       `json:"completed"`
	Cancelled       bool       `json:"cancelled"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// InProgress reports whether the session has been explicitly started and
// not yet closed out.
func (s SessionRow) InProgress() bool {
	return s.StartedAt != nil && !s.Completed && !s.Cancelled
}
