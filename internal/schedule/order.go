package schedule

import (
	"slices"
	"time"
)

// Item pairs a session record with its derived status for ordering. Ref
// carries an opaque caller value (the full session row, typically) through
// sorting and grouping untouched.
type Item struct {
	Record Record
	Status Status
	Ref    any
}

// statusPrecedence is the bucket order of the grouped view: the running
// session first, then today's, then upcoming, then what was missed, then
// the closed states.
var statusPrecedence = []Status{
	StatusInProgress,
	StatusToday,
	StatusUpcoming,
	StatusOverdue,
	StatusCompleted,
	StatusCancelled,
}

// Compare orders two classified sessions relative to now. An in-progress
// session sorts before everything else. Among the rest, a future instant
// sorts before a past one, futures sort ascending (soonest first) and
// pasts sort descending (most recent first). This is deliberately not a
// single global time sort.
func Compare(a, b Item, now time.Time) int {
	aRun := a.Status == StatusInProgress
	bRun := b.Status == StatusInProgress
	if aRun != bRun {
		if aRun {
			return -1
		}
		return 1
	}
	return compareInstants(a.Record.ScheduledAt, b.Record.ScheduledAt, now)
}

// compareInstants applies the future-ascending / past-descending rule.
// Zero instants (failed parses) sort last and equal to each other rather
// than failing the whole sort.
func compareInstants(a, b, now time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}

	aFuture := !a.Before(now)
	bFuture := !b.Before(now)
	switch {
	case aFuture && bFuture:
		return a.Compare(b)
	case !aFuture && !bFuture:
		return b.Compare(a)
	case aFuture:
		return -1
	}
	return 1
}

// Order returns the items sorted by Compare: the running session pinned on
// top, the nearest upcoming sessions next in chronological order, then
// past sessions most recent first. The input slice is not modified.
func Order(items []Item, now time.Time) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int { return Compare(a, b, now) })
	return out
}

// StatusGroup is one bucket of the grouped view.
type StatusGroup struct {
	Status Status
	Items  []Item
}

// Group buckets items by status in precedence order and time-orders each
// bucket with the same future-ascending / past-descending rule Order uses.
// Empty buckets are omitted. Rebuilt on every call; nothing is cached.
func Group(items []Item, now time.Time) []StatusGroup {
	buckets := make(map[Status][]Item, len(statusPrecedence))
	for _, it := range items {
		buckets[it.Status] = append(buckets[it.Status], it)
	}

	var out []StatusGroup
	for _, st := range statusPrecedence {
		bucket := buckets[st]
		if len(bucket) == 0 {
			continue
		}
		slices.SortStableFunc(bucket, func(a, b Item) int {
			return compareInstants(a.Record.ScheduledAt, b.Record.ScheduledAt, now)
		})
		out = append(out, StatusGroup{Status: st, Items: bucket})
	}
	return out
}

// Filter returns the items whose status is in keep, preserving input
// order. Screens that hide completed or cancelled sessions filter before
// ordering; screens that show everything skip this.
func Filter(items []Item, keep ...Status) []Item {
	var out []Item
	for _, it := range items {
		if slices.Contains(keep, it.Status) {
			out = append(out, it)
		}
	}
	return out
}
