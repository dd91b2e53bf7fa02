package schedule

import (
	"math"
	"time"
)

// SameDay reports whether a and b fall on the same calendar date
// (year/month/day). This is stricter than "within 24 hours": two instants
// minutes apart across midnight are different days.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on the same calendar date as now.
func IsToday(t, now time.Time) bool {
	return SameDay(t, now)
}

// StartOfDay returns midnight on t's calendar date, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight on the Sunday beginning t's calendar week.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// IsThisWeek reports whether t falls in the same Sunday-anchored calendar
// week as now.
func IsThisWeek(t, now time.Time) bool {
	return StartOfWeek(t).Equal(StartOfWeek(now))
}

// DayDiff returns the signed number of calendar days from now's date to
// t's date: 0 for today, 1 for tomorrow, -1 for yesterday. Rounding
// absorbs DST-shortened or -lengthened days.
func DayDiff(t, now time.Time) int {
	return int(math.Round(StartOfDay(t).Sub(StartOfDay(now)).Hours() / 24))
}
