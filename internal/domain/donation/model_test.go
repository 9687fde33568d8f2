package donation

import (
	"testing"
	"time"
)

// TestValidate tests donation validation rules.
func TestValidate(t *testing.T) {
	d := Donation{ParticipantID: "p1", Number: 1, AmountCents: 2500}
	if err := d.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	d = Donation{Number: 1, AmountCents: 2500}
	if err := d.Validate(); err != ErrEmptyParticipant {
		t.Errorf("expected ErrEmptyParticipant, got %v", err)
	}

	d = Donation{ParticipantID: "p1", Number: 0, AmountCents: 2500}
	if err := d.Validate(); err != ErrInvalidNumber {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}

	d = Donation{ParticipantID: "p1", Number: 1, AmountCents: 0}
	if err := d.Validate(); err != ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

// TestAmountDisplay tests cent-to-dollar rendering.
func TestAmountDisplay(t *testing.T) {
	d := Donation{AmountCents: 2505}
	if got := d.AmountDisplay(); got != "25.05" {
		t.Errorf("AmountDisplay = %q, want 25.05", got)
	}
	d.AmountCents = 100
	if got := d.AmountDisplay(); got != "1.00" {
		t.Errorf("AmountDisplay = %q, want 1.00", got)
	}
}

// TestDateDisplay tests MM/DD/YYYY formatting and the blank case.
func TestDateDisplay(t *testing.T) {
	d := Donation{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	if got := d.DateDisplay(); got != "03/09/2026" {
		t.Errorf("DateDisplay = %q, want 03/09/2026", got)
	}
	d.Date = time.Time{}
	if got := d.DateDisplay(); got != "" {
		t.Errorf("DateDisplay = %q, want empty", got)
	}
}
