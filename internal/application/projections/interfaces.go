package projections

import (
	"context"

	donationstore "outreach/internal/adapters/storage/donation"
	milestonestore "outreach/internal/adapters/storage/milestone"
	surveystore "outreach/internal/adapters/storage/survey"
	"outreach/internal/domain/event"
	"outreach/internal/domain/participant"
)

// ParticipantStore is the read surface needed by participant projections.
type ParticipantStore interface {
	List(ctx context.Context, search string) ([]participant.Participant, error)
	Count(ctx context.Context) (int, error)
}

// DonationStore is the read surface needed by donation projections.
type DonationStore interface {
	List(ctx context.Context, search string) ([]donationstore.ListRow, error)
}

// EventStore is the read surface needed by event projections.
type EventStore interface {
	List(ctx context.Context, search string) ([]event.Occurrence, error)
	ListTemplates(ctx context.Context) ([]event.Template, error)
	ListLocations(ctx context.Context) ([]event.LocationCapacity, error)
}

// SurveyStore is the read surface needed by survey projections.
type SurveyStore interface {
	List(ctx context.Context, search string) ([]surveystore.ListRow, error)
}

// MilestoneStore is the read surface needed by milestone projections.
type MilestoneStore interface {
	ListAll(ctx context.Context, search string) ([]milestonestore.ListRow, error)
}
