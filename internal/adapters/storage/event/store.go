package event

import (
	"context"

	domain "outreach/internal/domain/event"
)

// Store persists event occurrences plus the template and location lookups
// offered on the scheduling form.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Occurrence, error)
	Save(ctx context.Context, value domain.Occurrence) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, search string) ([]domain.Occurrence, error)
	ListTemplates(ctx context.Context) ([]domain.Template, error)
	ListLocations(ctx context.Context) ([]domain.LocationCapacity, error)
}
