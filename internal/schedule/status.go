package schedule

import "time"

// Status is the derived lifecycle state of a session at a given instant.
// It is recomputed on every evaluation, never stored: the same session can
// move upcoming → today → overdue as the clock advances.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusInProgress Status = "in_progress"
	StatusToday      Status = "today"
	StatusOverdue    Status = "overdue"
	StatusUpcoming   Status = "upcoming"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusInProgress,
		StatusToday, StatusOverdue, StatusUpcoming:
		return true
	}
	return false
}

// Terminal reports whether s is a final state that no clock advance can
// change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Record is the minimal view of a session the classifier needs. Completed
// and Cancelled are owned by external workflows; InProgress is only set by
// an explicit start-session transition, never derived from time.
type Record struct {
	ScheduledAt time.Time
	Completed   bool
	Cancelled   bool
	InProgress  bool
}

// Classify derives the lifecycle status of a record at the given instant.
// The first matching rule wins: Completed beats Cancelled beats InProgress
// beats any time-based state, which also resolves the (malformed)
// completed+cancelled combination deterministically.
func Classify(rec Record, now time.Time) Status {
	switch {
	case rec.Completed:
		return StatusCompleted
	case rec.Cancelled:
		return StatusCancelled
	case rec.InProgress:
		return StatusInProgress
	}
	return ClassifyTime(rec.ScheduledAt, now)
}

// ClassifyTime is the time-only classifier used where no explicit flags
// exist. It never returns InProgress. "Today" means calendar-date
// equality, not within 24 hours: 23:59 yesterday and 00:01 today are two
// different days no matter how close the instants are.
//
// A zero instant (a failed parse upstream) classifies as overdue rather
// than panicking or erroring.
func ClassifyTime(at, now time.Time) Status {
	switch {
	case SameDay(at, now):
		return StatusToday
	case at.Before(now):
		return StatusOverdue
	}
	return StatusUpcoming
}
