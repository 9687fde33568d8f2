package projections

import (
	"context"
)

// GetSurveyListQuery carries query parameters.
type GetSurveyListQuery struct {
	Search string
}

// SurveyRow is one response formatted for the list screen.
type SurveyRow struct {
	ParticipantID   string
	EventID         string
	ParticipantName string
	EventName       string
	Satisfaction    int
	Usefulness      int
	Instructor      int
	Recommendation  int
	NPSBucket       string
	Comments        string
	SubmittedAt     string
}

// GetSurveyListResult carries the query result.
type GetSurveyListResult struct {
	Surveys []SurveyRow
}

// GetSurveyListDeps holds dependencies for GetSurveyList.
type GetSurveyListDeps struct {
	SurveyStore SurveyStore
}

// QueryGetSurveyList retrieves responses formatted for display, newest first.
// PRE: none
// POST: Returns rows with NPS bucket labels resolved
func QueryGetSurveyList(ctx context.Context, query GetSurveyListQuery, deps GetSurveyListDeps) (GetSurveyListResult, error) {
	rows, err := deps.SurveyStore.List(ctx, query.Search)
	if err != nil {
		return GetSurveyListResult{}, err
	}

	result := make([]SurveyRow, 0, len(rows))
	for _, r := range rows {
		row := SurveyRow{
			ParticipantID:   r.ParticipantID,
			EventID:         r.EventID,
			ParticipantName: r.ParticipantName,
			EventName:       r.EventName,
			Satisfaction:    r.Satisfaction,
			Usefulness:      r.Usefulness,
			Instructor:      r.Instructor,
			Recommendation:  r.Recommendation,
			NPSBucket:       r.NPSBucket,
			Comments:        r.Comments,
		}
		if !r.SubmittedAt.IsZero() {
			row.SubmittedAt = r.SubmittedAt.Format("01/02/2006")
		}
		result = append(result, row)
	}
	return GetSurveyListResult{Surveys: result}, nil
}
