package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"outreach/internal/domain/milestone"

	"github.com/google/uuid"
)

// MilestoneStoreForWrite defines the store interface needed by the
// milestone orchestrators.
type MilestoneStoreForWrite interface {
	Insert(ctx context.Context, m milestone.Milestone) error
	ReplaceByTitle(ctx context.Context, participantID, oldTitle string, replacement milestone.Milestone) error
}

// AddMilestoneInput carries input for the add orchestrator.
type AddMilestoneInput struct {
	Email     string
	FirstName string
	LastName  string
	Title     string
	Date      time.Time
}

// MilestoneDeps holds dependencies for the milestone orchestrators.
type MilestoneDeps struct {
	ParticipantStore ParticipantStoreForCreate
	MilestoneStore   MilestoneStoreForWrite
}

// ExecuteAddMilestone resolves the participant and records an achievement.
// PRE: Title is non-empty
// POST: Milestone persisted, or milestone.ErrTitleExists on a duplicate title
func ExecuteAddMilestone(ctx context.Context, input AddMilestoneInput, deps MilestoneDeps) error {
	participantID, err := ExecuteEnsureParticipant(ctx, EnsureParticipantInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}, EnsureParticipantDeps{ParticipantStore: deps.ParticipantStore})
	if err != nil {
		return err
	}

	m := milestone.Milestone{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		Title:         input.Title,
		Date:          input.Date,
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if err := deps.MilestoneStore.Insert(ctx, m); err != nil {
		return err
	}

	slog.Info("milestone_added", "participant_id", participantID, "title", input.Title)
	return nil
}

// EditMilestoneInput carries input for the edit orchestrator. OldTitle is
// the title the edit form was opened with; Title may differ after the edit.
type EditMilestoneInput struct {
	ParticipantID string
	OldTitle      string
	Title         string
	Date          time.Time
}

// ExecuteEditMilestone replaces the row keyed by the old title with the
// edited values. The title is part of the natural key, so an edit is a
// delete-and-insert in one transaction rather than an in-place update.
// PRE: ParticipantID is non-empty
// POST: One row for (participant, new title) exists; the old title is gone
func ExecuteEditMilestone(ctx context.Context, input EditMilestoneInput, deps MilestoneDeps) error {
	m := milestone.Milestone{
		ID:            uuid.New().String(),
		ParticipantID: input.ParticipantID,
		Title:         input.Title,
		Date:          input.Date,
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if err := deps.MilestoneStore.ReplaceByTitle(ctx, input.ParticipantID, input.OldTitle, m); err != nil {
		return err
	}

	slog.Info("milestone_edited", "participant_id", input.ParticipantID, "old_title", input.OldTitle, "title", input.Title)
	return nil
}
