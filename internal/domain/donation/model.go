package donation

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrEmptyParticipant = errors.New("donation must belong to a participant")
	ErrInvalidNumber    = errors.New("donation number must be positive")
	ErrInvalidAmount    = errors.New("donation amount must be positive")
)

// Donation is one gift from one participant. Its identity is the composite
// (ParticipantID, Number) where Number is a per-participant sequence
// starting at 1.
type Donation struct {
	ParticipantID string
	Number        int
	Date          time.Time
	AmountCents   int64
}

// Validate checks if the Donation has valid data.
// PRE: Donation struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Donation) Validate() error {
	if d.ParticipantID == "" {
		return ErrEmptyParticipant
	}
	if d.Number < 1 {
		return ErrInvalidNumber
	}
	if d.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// AmountDisplay renders the amount as a dollar string, e.g. "25.00".
// INVARIANT: Donation fields are not mutated
func (d *Donation) AmountDisplay() string {
	return fmt.Sprintf("%d.%02d", d.AmountCents/100, d.AmountCents%100)
}

// DateDisplay renders the donation date as MM/DD/YYYY, or blank when unset.
// INVARIANT: Donation fields are not mutated
func (d *Donation) DateDisplay() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format("01/02/2006")
}
