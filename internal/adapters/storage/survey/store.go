package survey

import (
	"context"

	domain "outreach/internal/domain/survey"
)

// ListRow is a survey response joined with the respondent's name, the event
// name and the NPS bucket label for list screens.
type ListRow struct {
	domain.Response
	ParticipantName string
	EventName       string
	NPSBucket       string
}

// Store persists Response state. Identity is the composite
// (participant id, event id).
type Store interface {
	GetByKey(ctx context.Context, participantID, eventID string) (domain.Response, error)
	Save(ctx context.Context, value domain.Response) error
	Delete(ctx context.Context, participantID, eventID string) error
	List(ctx context.Context, search string) ([]ListRow, error)
}
