package projections

import (
	"context"
	"fmt"
)

// GetDashboardResult carries the landing-page summary counts.
type GetDashboardResult struct {
	ParticipantCount int
	DonationCount    int
	DonationTotal    string // rendered dollar total
	EventCount       int
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	ParticipantStore ParticipantStore
	DonationStore    DonationStore
	EventStore       EventStore
}

// QueryGetDashboard computes the staff landing-page summary. Each count is
// independent; a failing store zeroes its own tile instead of failing the page.
// PRE: none
// POST: Returns counts >= 0
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (GetDashboardResult, error) {
	var result GetDashboardResult

	if count, err := deps.ParticipantStore.Count(ctx); err == nil {
		result.ParticipantCount = count
	}

	if rows, err := deps.DonationStore.List(ctx, ""); err == nil {
		result.DonationCount = len(rows)
		var cents int64
		for _, r := range rows {
			cents += r.AmountCents
		}
		result.DonationTotal = renderCents(cents)
	} else {
		result.DonationTotal = renderCents(0)
	}

	if events, err := deps.EventStore.List(ctx, ""); err == nil {
		result.EventCount = len(events)
	}

	return result, nil
}

func renderCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
