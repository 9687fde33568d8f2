package participant

import (
	"context"

	domain "outreach/internal/domain/participant"
)

// Store persists Participant state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Participant, error)
	GetByEmail(ctx context.Context, email string) (domain.Participant, error)
	Save(ctx context.Context, value domain.Participant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string) ([]domain.Participant, error)
	Count(ctx context.Context) (int, error)
}
