package milestone

import (
	"context"

	domain "outreach/internal/domain/milestone"
)

// Store persists Milestone state. Rows carry a surrogate ID, but lookups
// and edits arrive by the natural key (participant id, title).
type Store interface {
	GetByNaturalKey(ctx context.Context, participantID, title string) (domain.Milestone, error)
	Insert(ctx context.Context, value domain.Milestone) error
	// ReplaceByTitle atomically deletes the row keyed by oldTitle (if any)
	// and inserts the replacement. A title collision with a third row
	// returns domain.ErrTitleExists.
	ReplaceByTitle(ctx context.Context, participantID, oldTitle string, replacement domain.Milestone) error
	Delete(ctx context.Context, participantID, title string) error
	List(ctx context.Context, participantID, search string) ([]domain.Milestone, error)
	ListAll(ctx context.Context, search string) ([]ListRow, error)
}

// ListRow is a milestone joined with its participant's name.
type ListRow struct {
	domain.Milestone
	ParticipantName string
}
