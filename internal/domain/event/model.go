package event

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("event name cannot be empty")
	ErrEndBeforeTop = errors.New("event end must not be before its start")
)

// Occurrence is one scheduled run of an event at a location.
type Occurrence struct {
	ID                   string
	Name                 string
	Location             string
	StartAt              time.Time
	EndAt                time.Time
	RegistrationDeadline time.Time
	Description          string // markdown, rendered on the events page
}

// Validate checks if the Occurrence has valid data.
// PRE: Occurrence struct is populated
// POST: Returns nil if valid, error otherwise
func (o *Occurrence) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrEmptyName
	}
	if !o.EndAt.IsZero() && !o.StartAt.IsZero() && o.EndAt.Before(o.StartAt) {
		return ErrEndBeforeTop
	}
	return nil
}

// Template is a reusable event name offered when scheduling occurrences.
type Template struct {
	Name string
}

// LocationCapacity is a lookup row pairing a location with its capacity.
type LocationCapacity struct {
	Location string
	Capacity int
}
