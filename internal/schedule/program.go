package schedule

import (
	"slices"
	"time"
)

// Program describes a recurring training program: the first eligible day,
// how many weeks it runs, and which weekdays sessions fall on
// (time.Sunday..time.Saturday).
type Program struct {
	StartDate     time.Time
	DurationWeeks int
	Weekdays      []time.Weekday
}

// Generate expands a program into the full list of scheduled instants,
// sorted ascending. Every generated date is anchored to the calendar week
// containing StartDate, so a program started mid-week still follows the
// canonical weekday pattern, including dates earlier in that first week
// than StartDate itself. Results are not clamped to StartDate and
// duplicate pattern entries produce duplicate instants.
//
// A malformed program (DurationWeeks < 1 or an empty pattern) yields an
// empty schedule rather than an error; callers treat that as "nothing to
// schedule".
//
// Generation is deterministic: no clock reads, no randomness. The
// time-of-day and location of StartDate carry through to every instant.
func Generate(p Program) []time.Time {
	if p.DurationWeeks < 1 || len(p.Weekdays) == 0 {
		return nil
	}

	weekStart := p.StartDate.AddDate(0, 0, -int(p.StartDate.Weekday()))

	out := make([]time.Time, 0, p.DurationWeeks*len(p.Weekdays))
	for w := 0; w < p.DurationWeeks; w++ {
		for _, day := range p.Weekdays {
			out = append(out, weekStart.AddDate(0, 0, w*7+int(day)))
		}
	}

	slices.SortStableFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}
