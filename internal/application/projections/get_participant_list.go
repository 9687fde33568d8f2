package projections

import (
	"context"

	"outreach/internal/domain/role"
)

// GetParticipantListQuery carries query parameters.
type GetParticipantListQuery struct {
	Search string
}

// ParticipantRow is one participant formatted for the list screen.
type ParticipantRow struct {
	ID              string
	Name            string
	Email           string
	City            string
	State           string
	FieldOfInterest string
	Role            string
	IsManager       bool
	CanLogIn        bool
}

// GetParticipantListResult carries the query result.
type GetParticipantListResult struct {
	Participants []ParticipantRow
}

// GetParticipantListDeps holds dependencies for GetParticipantList.
type GetParticipantListDeps struct {
	ParticipantStore ParticipantStore
	Policy           role.Policy
}

// QueryGetParticipantList retrieves participants formatted for display.
// PRE: none
// POST: Returns rows in creation order with role levels resolved
func QueryGetParticipantList(ctx context.Context, query GetParticipantListQuery, deps GetParticipantListDeps) (GetParticipantListResult, error) {
	participants, err := deps.ParticipantStore.List(ctx, query.Search)
	if err != nil {
		return GetParticipantListResult{}, err
	}

	result := make([]ParticipantRow, 0, len(participants))
	for _, p := range participants {
		result = append(result, ParticipantRow{
			ID:              p.ID,
			Name:            p.FullName(),
			Email:           p.Email,
			City:            p.City,
			State:           p.State,
			FieldOfInterest: p.FieldOfInterest,
			Role:            p.Role,
			IsManager:       deps.Policy.IsElevated(p.Role),
			CanLogIn:        p.PasswordHash != "",
		})
	}
	return GetParticipantListResult{Participants: result}, nil
}
