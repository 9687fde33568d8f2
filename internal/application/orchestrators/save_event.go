package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"outreach/internal/domain/event"

	"github.com/google/uuid"
)

// EventStoreForSave defines the store interface needed by SaveEvent.
type EventStoreForSave interface {
	Save(ctx context.Context, o event.Occurrence) error
}

// SaveEventInput carries input for the orchestrator. An empty ID means a
// new occurrence; a present ID means an edit.
type SaveEventInput struct {
	ID                   string
	Name                 string
	Location             string
	StartAt              time.Time
	EndAt                time.Time
	RegistrationDeadline time.Time
	Description          string
}

// SaveEventDeps holds dependencies for SaveEvent.
type SaveEventDeps struct {
	EventStore EventStoreForSave
}

// ExecuteSaveEvent validates and persists an event occurrence.
// PRE: Name is non-empty; EndAt is not before StartAt
// POST: Occurrence inserted or updated; returns its ID
func ExecuteSaveEvent(ctx context.Context, input SaveEventInput, deps SaveEventDeps) (string, error) {
	o := event.Occurrence{
		ID:                   input.ID,
		Name:                 input.Name,
		Location:             input.Location,
		StartAt:              input.StartAt,
		EndAt:                input.EndAt,
		RegistrationDeadline: input.RegistrationDeadline,
		Description:          input.Description,
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if err := o.Validate(); err != nil {
		return "", err
	}
	if err := deps.EventStore.Save(ctx, o); err != nil {
		return "", err
	}

	slog.Info("event_saved", "event_id", o.ID, "name", o.Name)
	return o.ID, nil
}
