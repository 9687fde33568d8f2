package projections

import (
	"context"
)

// GetMilestoneListQuery carries query parameters.
type GetMilestoneListQuery struct {
	Search string
}

// MilestoneRow is one milestone formatted for the list screen.
type MilestoneRow struct {
	ParticipantID   string
	ParticipantName string
	Title           string
	DateDisplay     string
}

// GetMilestoneListResult carries the query result.
type GetMilestoneListResult struct {
	Milestones []MilestoneRow
}

// GetMilestoneListDeps holds dependencies for GetMilestoneList.
type GetMilestoneListDeps struct {
	MilestoneStore MilestoneStore
}

// QueryGetMilestoneList retrieves milestones formatted for display, newest first.
// PRE: none
// POST: Returns rows keyed by (participant, title) for edit links
func QueryGetMilestoneList(ctx context.Context, query GetMilestoneListQuery, deps GetMilestoneListDeps) (GetMilestoneListResult, error) {
	rows, err := deps.MilestoneStore.ListAll(ctx, query.Search)
	if err != nil {
		return GetMilestoneListResult{}, err
	}

	result := make([]MilestoneRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, MilestoneRow{
			ParticipantID:   r.ParticipantID,
			ParticipantName: r.ParticipantName,
			Title:           r.Title,
			DateDisplay:     r.DateDisplay(),
		})
	}
	return GetMilestoneListResult{Milestones: result}, nil
}
