package projections

import (
	"context"
	"time"

	"outreach/internal/domain/event"
)

// GetEventListQuery carries query parameters.
type GetEventListQuery struct {
	Search string
}

// EventRow is one occurrence formatted for the list screen. Description
// stays raw markdown; the template layer renders it.
type EventRow struct {
	ID              string
	Name            string
	Location        string
	StartDisplay    string
	EndDisplay      string
	DeadlineDisplay string
	DeadlinePassed  bool
	Description     string
}

// GetEventListResult carries the query result.
type GetEventListResult struct {
	Events    []EventRow
	Templates []event.Template
	Locations []event.LocationCapacity
}

// GetEventListDeps holds dependencies for GetEventList.
type GetEventListDeps struct {
	EventStore EventStore
	Now        func() time.Time // nil means time.Now
}

// QueryGetEventList retrieves occurrences plus the template and location
// lookups for the scheduling form, newest start first.
// PRE: none
// POST: Returns rows with rendered times; lookup failures are not fatal
func QueryGetEventList(ctx context.Context, query GetEventListQuery, deps GetEventListDeps) (GetEventListResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	events, err := deps.EventStore.List(ctx, query.Search)
	if err != nil {
		return GetEventListResult{}, err
	}

	rows := make([]EventRow, 0, len(events))
	for _, o := range events {
		rows = append(rows, EventRow{
			ID:              o.ID,
			Name:            o.Name,
			Location:        o.Location,
			StartDisplay:    displayTime(o.StartAt),
			EndDisplay:      displayTime(o.EndAt),
			DeadlineDisplay: displayDate(o.RegistrationDeadline),
			DeadlinePassed:  !o.RegistrationDeadline.IsZero() && now().After(o.RegistrationDeadline),
			Description:     o.Description,
		})
	}

	result := GetEventListResult{Events: rows}

	// The form lookups are decoration; an empty dropdown beats a failed page.
	if templates, err := deps.EventStore.ListTemplates(ctx); err == nil {
		result.Templates = templates
	}
	if locations, err := deps.EventStore.ListLocations(ctx); err == nil {
		result.Locations = locations
	}
	return result, nil
}

func displayTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02/2006 3:04 PM")
}

func displayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02/2006")
}
