package projections

import (
	"context"
	"strings"
)

// GetDonationListQuery carries query parameters.
type GetDonationListQuery struct {
	Search string
}

// DonationRow is one donation formatted for the list screen.
type DonationRow struct {
	ParticipantID string
	Number        int
	DonorName     string
	DateDisplay   string
	AmountDisplay string
}

// GetDonationListResult carries the query result.
type GetDonationListResult struct {
	Donations []DonationRow
}

// GetDonationListDeps holds dependencies for GetDonationList.
type GetDonationListDeps struct {
	DonationStore DonationStore
}

// QueryGetDonationList retrieves donations formatted for display, grouped
// by donor with the newest gift first.
// PRE: none
// POST: Returns rows in store order with rendered dates and amounts
func QueryGetDonationList(ctx context.Context, query GetDonationListQuery, deps GetDonationListDeps) (GetDonationListResult, error) {
	rows, err := deps.DonationStore.List(ctx, query.Search)
	if err != nil {
		return GetDonationListResult{}, err
	}

	result := make([]DonationRow, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.DonorFirstName + " " + r.DonorLastName)
		if name == "" {
			name = "(Unknown donor)"
		}
		result = append(result, DonationRow{
			ParticipantID: r.ParticipantID,
			Number:        r.Number,
			DonorName:     name,
			DateDisplay:   r.DateDisplay(),
			AmountDisplay: r.AmountDisplay(),
		})
	}
	return GetDonationListResult{Donations: result}, nil
}
