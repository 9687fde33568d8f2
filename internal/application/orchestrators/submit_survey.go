package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"outreach/internal/domain/survey"
)

// SurveyStoreForSubmit defines the store interface needed by SubmitSurvey.
type SurveyStoreForSubmit interface {
	Save(ctx context.Context, r survey.Response) error
}

// SubmitSurveyInput carries input for the orchestrator. The respondent is
// identified by email so staff can key in paper surveys.
type SubmitSurveyInput struct {
	Email          string
	FirstName      string
	LastName       string
	EventID        string
	SubmittedAt    time.Time
	Satisfaction   int
	Usefulness     int
	Instructor     int
	Recommendation int
	Comments       string
}

// SubmitSurveyDeps holds dependencies for SubmitSurvey.
type SubmitSurveyDeps struct {
	ParticipantStore ParticipantStoreForCreate
	SurveyStore      SurveyStoreForSubmit
}

// ExecuteSubmitSurvey resolves the respondent and upserts their response.
// Resubmitting for the same event overwrites the earlier answers.
// PRE: EventID is non-empty, scores are 1-10
// POST: Exactly one response per (participant, event) exists
func ExecuteSubmitSurvey(ctx context.Context, input SubmitSurveyInput, deps SubmitSurveyDeps) error {
	participantID, err := ExecuteEnsureParticipant(ctx, EnsureParticipantInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}, EnsureParticipantDeps{ParticipantStore: deps.ParticipantStore})
	if err != nil {
		return err
	}

	submittedAt := input.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	r := survey.Response{
		ParticipantID:  participantID,
		EventID:        input.EventID,
		SubmittedAt:    submittedAt,
		Satisfaction:   input.Satisfaction,
		Usefulness:     input.Usefulness,
		Instructor:     input.Instructor,
		Recommendation: input.Recommendation,
		Comments:       input.Comments,
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := deps.SurveyStore.Save(ctx, r); err != nil {
		return err
	}

	slog.Info("survey_submitted", "participant_id", participantID, "event_id", input.EventID)
	return nil
}
