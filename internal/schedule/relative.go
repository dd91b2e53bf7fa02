package schedule

import (
	"fmt"
	"time"
)

// absoluteLayout is the short date format used once an instant is too far
// from now for a relative phrase.
const absoluteLayout = "Jan 2, 2006"

// RelativeLabel renders an instant relative to now as a human-facing
// phrase: "today", "tomorrow", "yesterday", "in N days" / "N days ago"
// within a week, elapsed hours/minutes for earlier the same day, and a
// short absolute date beyond a week. The exact singular/plural wording is
// observable output and matches the consuming screens.
func RelativeLabel(at, now time.Time) string {
	if at.IsZero() {
		return ""
	}

	switch n := DayDiff(at, now); {
	case n == 0:
		if at.After(now) {
			return "today"
		}
		return elapsedLabel(now.Sub(at))
	case n == 1:
		return "tomorrow"
	case n == -1:
		return "yesterday"
	case n > 1 && n <= 7:
		return fmt.Sprintf("in %d days", n)
	case n < -1 && n > -7:
		return fmt.Sprintf("%d days ago", -n)
	}
	return at.Format(absoluteLayout)
}

// elapsedLabel renders a positive sub-day duration. Unit escalation:
// anything at or past a full hour reports hours, otherwise minutes,
// otherwise "just now".
func elapsedLabel(d time.Duration) string {
	hours := int(d.Hours())
	if hours > 1 {
		return fmt.Sprintf("%d hours ago", hours)
	}
	if hours == 1 {
		return "1 hour ago"
	}
	minutes := int(d.Minutes())
	if minutes > 1 {
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	if minutes == 1 {
		return "1 minute ago"
	}
	return "just now"
}
