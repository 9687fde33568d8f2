package milestone

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyParticipant = errors.New("milestone must belong to a participant")
	ErrEmptyTitle       = errors.New("milestone title cannot be empty")
	// ErrTitleExists is returned when a replace or insert would collide with
	// an existing (participant, title) pair. It is distinct from generic
	// store failure so callers can surface it as a conflict.
	ErrTitleExists = errors.New("a milestone with this title already exists for the participant")
)

// Milestone records an achievement for a participant. The row carries a
// stable surrogate ID; the natural key (ParticipantID, Title) is exposed
// only at the HTTP boundary, where edit forms may change the title itself.
type Milestone struct {
	ID            string
	ParticipantID string
	Title         string
	Date          time.Time
}

// Validate checks if the Milestone has valid data.
// PRE: Milestone struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Milestone) Validate() error {
	if m.ParticipantID == "" {
		return ErrEmptyParticipant
	}
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// DateDisplay renders the milestone date as MM/DD/YYYY, or blank when unset.
// INVARIANT: Milestone fields are not mutated
func (m *Milestone) DateDisplay() string {
	if m.Date.IsZero() {
		return ""
	}
	return m.Date.Format("01/02/2006")
}
