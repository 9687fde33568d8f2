package donation

import (
	"context"

	domain "outreach/internal/domain/donation"
)

// ListRow is a donation joined with its donor's name for list screens.
type ListRow struct {
	domain.Donation
	DonorFirstName string
	DonorLastName  string
}

// Store persists Donation state. Identity is the composite
// (participant id, per-participant number).
type Store interface {
	GetByKey(ctx context.Context, participantID string, number int) (domain.Donation, error)
	NextNumber(ctx context.Context, participantID string) (int, error)
	Insert(ctx context.Context, value domain.Donation) error
	Update(ctx context.Context, value domain.Donation) error
	Delete(ctx context.Context, participantID string, number int) error
	List(ctx context.Context, search string) ([]ListRow, error)
}
