package orchestrators

import (
	"context"
	"errors"
	"testing"

	"outreach/internal/domain/survey"
)

// TestExecuteSubmitSurvey_Valid tests a complete submission.
func TestExecuteSubmitSurvey_Valid(t *testing.T) {
	participants := newMockParticipantStore()
	surveys := newMockSurveyStore()
	seedAccount(participants, "p1", "ada@example.com", "correct-horse-battery")

	err := ExecuteSubmitSurvey(context.Background(), SubmitSurveyInput{
		Email:          "ada@example.com",
		EventID:        "e1",
		Satisfaction:   9,
		Usefulness:     8,
		Instructor:     10,
		Recommendation: 9,
		Comments:       "Great session",
		SubmittedAt:    fixedTime,
	}, SubmitSurveyDeps{ParticipantStore: participants, SurveyStore: surveys})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, ok := surveys.responses["p1/e1"]
	if !ok {
		t.Fatal("response was not persisted")
	}
	if r.Recommendation != 9 {
		t.Errorf("Recommendation = %d, want 9", r.Recommendation)
	}
}

// TestExecuteSubmitSurvey_ResubmitOverwrites tests the upsert behavior.
func TestExecuteSubmitSurvey_ResubmitOverwrites(t *testing.T) {
	participants := newMockParticipantStore()
	surveys := newMockSurveyStore()
	seedAccount(participants, "p1", "ada@example.com", "correct-horse-battery")
	deps := SubmitSurveyDeps{ParticipantStore: participants, SurveyStore: surveys}

	in := SubmitSurveyInput{
		Email: "ada@example.com", EventID: "e1",
		Satisfaction: 5, Usefulness: 5, Instructor: 5, Recommendation: 5,
	}
	if err := ExecuteSubmitSurvey(context.Background(), in, deps); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	in.Recommendation = 10
	if err := ExecuteSubmitSurvey(context.Background(), in, deps); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if len(surveys.responses) != 1 {
		t.Fatalf("responses = %d, want 1", len(surveys.responses))
	}
	if surveys.responses["p1/e1"].Recommendation != 10 {
		t.Errorf("Recommendation = %d, want 10", surveys.responses["p1/e1"].Recommendation)
	}
}

// TestExecuteSubmitSurvey_ScoreOutOfRange tests score bounds.
func TestExecuteSubmitSurvey_ScoreOutOfRange(t *testing.T) {
	participants := newMockParticipantStore()
	surveys := newMockSurveyStore()

	err := ExecuteSubmitSurvey(context.Background(), SubmitSurveyInput{
		Email: "ada@example.com", EventID: "e1",
		Satisfaction: 11, Usefulness: 5, Instructor: 5, Recommendation: 5,
	}, SubmitSurveyDeps{ParticipantStore: participants, SurveyStore: surveys})
	if !errors.Is(err, survey.ErrScoreOutOfRange) {
		t.Errorf("expected ErrScoreOutOfRange, got %v", err)
	}
}

// TestExecuteSubmitSurvey_MissingEvent tests validation rejection.
func TestExecuteSubmitSurvey_MissingEvent(t *testing.T) {
	participants := newMockParticipantStore()
	surveys := newMockSurveyStore()

	err := ExecuteSubmitSurvey(context.Background(), SubmitSurveyInput{
		Email:        "ada@example.com",
		Satisfaction: 5, Usefulness: 5, Instructor: 5, Recommendation: 5,
	}, SubmitSurveyDeps{ParticipantStore: participants, SurveyStore: surveys})
	if !errors.Is(err, survey.ErrEmptyEvent) {
		t.Errorf("expected ErrEmptyEvent, got %v", err)
	}
}
