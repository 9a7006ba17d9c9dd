package models

import "testing"

func TestSubtaskStatusValid(t *testing.T) {
	valid := []SubtaskStatus{
		StatusYetToStart, StatusInProgress, StatusDone, StatusBlocked, StatusNotApplicable,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}

	invalid := []SubtaskStatus{"", "pending", "cancelled", "DONE", "in-progress"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("%s should be invalid", s)
		}
	}
}

func TestAllStatusesClosedSet(t *testing.T) {
	if len(AllStatuses) != 5 {
		t.Fatalf("AllStatuses has %d entries, want 5", len(AllStatuses))
	}
	seen := make(map[SubtaskStatus]bool)
	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Errorf("AllStatuses contains invalid status %s", s)
		}
		if seen[s] {
			t.Errorf("AllStatuses contains duplicate %s", s)
		}
		seen[s] = true
	}
}

func TestStatusDisplay(t *testing.T) {
	for _, s := range AllStatuses {
		d := s.Display()
		if d.Icon == "" || d.Label == "" || d.Color == "" {
			t.Errorf("incomplete display for %s: %+v", s, d)
		}
	}

	// Unknown statuses fall back rather than panic.
	d := SubtaskStatus("bogus").Display()
	if d != StatusYetToStart.Display() {
		t.Errorf("unknown status display = %+v, want yet_to_start fallback", d)
	}
}
