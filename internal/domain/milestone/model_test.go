package milestone

import (
	"testing"
	"time"
)

// TestValidate tests milestone validation rules.
func TestValidate(t *testing.T) {
	m := Milestone{ID: "m1", ParticipantID: "p1", Title: "First Steps"}
	if err := m.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	m = Milestone{ID: "m1", Title: "First Steps"}
	if err := m.Validate(); err != ErrEmptyParticipant {
		t.Errorf("expected ErrEmptyParticipant, got %v", err)
	}

	m = Milestone{ID: "m1", ParticipantID: "p1", Title: "   "}
	if err := m.Validate(); err != ErrEmptyTitle {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}

// TestDateDisplay tests MM/DD/YYYY formatting.
func TestDateDisplay(t *testing.T) {
	m := Milestone{Date: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)}
	if got := m.DateDisplay(); got != "11/02/2026" {
		t.Errorf("DateDisplay = %q, want 11/02/2026", got)
	}
	m.Date = time.Time{}
	if got := m.DateDisplay(); got != "" {
		t.Errorf("DateDisplay = %q, want empty", got)
	}
}
