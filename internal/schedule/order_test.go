package schedule

import (
	"testing"
	"time"
)

func item(id string, at time.Time, status Status) Item {
	return Item{Record: Record{ScheduledAt: at}, Status: status, Ref: id}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Ref.(string)
	}
	return out
}

func assertIDs(t *testing.T, got []Item, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d items %v, want %d", len(got), ids(got), len(want))
	}
	for i := range want {
		if got[i].Ref.(string) != want[i] {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}
}

// TestOrderPinnedAndPartitioned verifies the single-list rule: the running
// session first, then the two future sessions soonest-first, then the two
// past sessions most-recent-first, regardless of input order.
func TestOrderPinnedAndPartitioned(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	input := []Item{
		item("past-far", now.AddDate(0, 0, -5), StatusOverdue),
		item("future-near", now.AddDate(0, 0, 1), StatusUpcoming),
		item("running", now.AddDate(0, 0, -2), StatusInProgress),
		item("past-near", now.AddDate(0, 0, -1), StatusOverdue),
		item("future-far", now.AddDate(0, 0, 4), StatusUpcoming),
	}

	got := Order(input, now)

	assertIDs(t, got, "running", "future-near", "future-far", "past-near", "past-far")
}

// TestOrderFutureBeforePast verifies a future/past pair always sorts the
// future record first even when the past one is closer to now.
func TestOrderFutureBeforePast(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	input := []Item{
		item("past-close", now.Add(-10*time.Minute), StatusToday),
		item("future-distant", now.AddDate(0, 0, 6), StatusUpcoming),
	}

	got := Order(input, now)

	assertIDs(t, got, "future-distant", "past-close")
}

// TestOrderInvalidInstantsLast verifies zero (unparseable) instants sort
// after everything else and equal among themselves instead of failing.
func TestOrderInvalidInstantsLast(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	input := []Item{
		item("invalid-a", time.Time{}, StatusOverdue),
		item("future", now.Add(2*time.Hour), StatusToday),
		item("invalid-b", time.Time{}, StatusOverdue),
		item("past", now.AddDate(0, 0, -3), StatusOverdue),
	}

	got := Order(input, now)

	// Stable sort keeps the two invalid items in input order.
	assertIDs(t, got, "future", "past", "invalid-a", "invalid-b")
}

// TestOrderDoesNotMutateInput verifies ordering returns a copy.
func TestOrderDoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	input := []Item{
		item("b", now.AddDate(0, 0, 2), StatusUpcoming),
		item("a", now.AddDate(0, 0, 1), StatusUpcoming),
	}

	Order(input, now)

	assertIDs(t, input, "b", "a")
}

// TestGroupPrecedenceOrder verifies the grouped view buckets by status
// precedence with each bucket time-ordered, and omits empty buckets.
func TestGroupPrecedenceOrder(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	input := []Item{
		item("done-old", now.AddDate(0, 0, -6), StatusCompleted),
		item("up-far", now.AddDate(0, 0, 5), StatusUpcoming),
		item("running", now, StatusInProgress),
		item("done-recent", now.Add(-3*time.Hour), StatusCompleted),
		item("up-near", now.AddDate(0, 0, 2), StatusUpcoming),
	}

	groups := Group(input, now)

	wantStatuses := []Status{StatusInProgress, StatusUpcoming, StatusCompleted}
	if len(groups) != len(wantStatuses) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantStatuses))
	}
	for i, g := range groups {
		if g.Status != wantStatuses[i] {
			t.Errorf("group[%d].Status = %q, want %q", i, g.Status, wantStatuses[i])
		}
	}

	assertIDs(t, groups[1].Items, "up-near", "up-far")
	// Completed items are past: most recent first.
	assertIDs(t, groups[2].Items, "done-recent", "done-old")
}

// TestFilter verifies status filtering preserves input order, so callers
// can exclude closed sessions before ordering.
func TestFilter(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)
	input := []Item{
		item("a", now.AddDate(0, 0, 1), StatusUpcoming),
		item("b", now.AddDate(0, 0, -1), StatusCompleted),
		item("c", now.AddDate(0, 0, -2), StatusOverdue),
		item("d", now.AddDate(0, 0, -3), StatusCancelled),
	}

	got := Filter(input, StatusUpcoming, StatusOverdue)

	assertIDs(t, got, "a", "c")

	if got := Filter(input); len(got) != 0 {
		t.Errorf("Filter with no statuses returned %d items, want 0", len(got))
	}
}
