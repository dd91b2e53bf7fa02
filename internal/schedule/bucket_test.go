package schedule

import (
	"testing"
	"time"
)

// TestSameDay verifies calendar-date equality ignores time of day and is
// strict across midnight.
func TestSameDay(t *testing.T) {
	cases := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same date far apart", time.Date(2025, time.August, 15, 0, 1, 0, 0, time.UTC), time.Date(2025, time.August, 15, 23, 59, 0, 0, time.UTC), true},
		{"adjacent dates minutes apart", time.Date(2025, time.August, 15, 23, 59, 0, 0, time.UTC), time.Date(2025, time.August, 16, 0, 1, 0, 0, time.UTC), false},
		{"same day different month", time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC), time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC), false},
		{"same day different year", time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC), time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := SameDay(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: SameDay = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestStartOfWeek verifies the Sunday anchor used by schedule generation
// and week bucketing.
func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want time.Time
	}{
		{"midweek", time.Date(2025, time.August, 6, 15, 30, 0, 0, time.UTC), time.Date(2025, time.August, 3, 0, 0, 0, 0, time.UTC)},
		{"sunday itself", time.Date(2025, time.August, 3, 9, 0, 0, 0, time.UTC), time.Date(2025, time.August, 3, 0, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2025, time.August, 9, 23, 0, 0, 0, time.UTC), time.Date(2025, time.August, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := StartOfWeek(tc.t); !got.Equal(tc.want) {
			t.Errorf("%s: StartOfWeek = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestIsThisWeek verifies week bucketing across the Saturday/Sunday
// boundary.
func TestIsThisWeek(t *testing.T) {
	now := time.Date(2025, time.August, 6, 12, 0, 0, 0, time.UTC) // Wednesday
	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"same week saturday", time.Date(2025, time.August, 9, 23, 0, 0, 0, time.UTC), true},
		{"same week sunday", time.Date(2025, time.August, 3, 0, 0, 0, 0, time.UTC), true},
		{"next sunday", time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC), false},
		{"previous saturday", time.Date(2025, time.August, 2, 23, 59, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := IsThisWeek(tc.t, now); got != tc.want {
			t.Errorf("%s: IsThisWeek = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestDayDiff verifies signed calendar-day offsets used by the relative
// labels.
func TestDayDiff(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		t    time.Time
		want int
	}{
		{"earlier today", now.Add(-6 * time.Hour), 0},
		{"later today", now.Add(6 * time.Hour), 0},
		{"just after next midnight", now.Add(13 * time.Hour), 1},
		{"just before last midnight", now.Add(-13 * time.Hour), -1},
		{"a week out", now.AddDate(0, 0, 7), 7},
		{"a week back", now.AddDate(0, 0, -7), -7},
	}
	for _, tc := range cases {
		if got := DayDiff(tc.t, now); got != tc.want {
			t.Errorf("%s: DayDiff = %d, want %d", tc.name, got, tc.want)
		}
	}
}
