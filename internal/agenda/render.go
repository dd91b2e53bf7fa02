package agenda

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/claude/coachplan/internal/schedule"
)

// statusHeading maps each status to its agenda section heading.
var statusHeading = map[schedule.Status]string{
	schedule.StatusInProgress: "In Progress",
	schedule.StatusToday:      "Today",
	schedule.StatusUpcoming:   "Upcoming",
	schedule.StatusOverdue:    "Overdue",
	schedule.StatusCompleted:  "Completed",
	schedule.StatusCancelled:  "Cancelled",
}

// classify rebuilds schedule items from entries at the given instant.
// Cached statuses go stale, so they are always re-derived.
func classify(entries []Entry, now time.Time) []schedule.Item {
	items := make([]schedule.Item, len(entries))
	for i, e := range entries {
		rec := schedule.Record{
			ScheduledAt: e.ScheduledAt,
			Completed:   e.Completed,
			Cancelled:   e.Cancelled,
			InProgress:  e.InProgress(),
		}
		items[i] = schedule.Item{Record: rec, Status: schedule.Classify(rec, now), Ref: e}
	}
	return items
}

// Render writes the grouped agenda as text: one section per status in
// precedence order, each session with its scheduled time and relative
// label.
func Render(w io.Writer, entries []Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No sessions scheduled.")
		return
	}

	for _, g := range schedule.Group(classify(entries, now), now) {
		fmt.Fprintf(w, "%s\n", statusHeading[g.Status])
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(statusHeading[g.Status])))
		for _, it := range g.Items {
			e := it.Ref.(Entry)
			renderLine(w, e, now)
		}
		fmt.Fprintln(w)
	}
}

// RenderFlat writes the agenda as a single ordered list without section
// headings.
func RenderFlat(w io.Writer, entries []Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No sessions scheduled.")
		return
	}

	for _, it := range schedule.Order(classify(entries, now), now) {
		e := it.Ref.(Entry)
		renderLine(w, e, now)
	}
}

func renderLine(w io.Writer, e Entry, now time.Time) {
	label := schedule.RelativeLabel(e.ScheduledAt, now)
	when := "??"
	if !e.ScheduledAt.IsZero() {
		when = e.ScheduledAt.Format("Mon Jan 2 15:04")
	}
	line := fmt.Sprintf("  %s  %s", when, label)
	if e.DurationMinutes != nil {
		line += fmt.Sprintf("  (%d min)", *e.DurationMinutes)
	}
	if e.Notes != "" {
		line += "  " + e.Notes
	}
	fmt.Fprintln(w, line)
}
