package orchestrators

import (
	"context"
	"errors"
	"testing"

	"outreach/internal/domain/milestone"
)

// TestExecuteAddMilestone_Valid tests recording an achievement.
func TestExecuteAddMilestone_Valid(t *testing.T) {
	participants := newMockParticipantStore()
	milestones := newMockMilestoneStore()
	seedAccount(participants, "p1", "ada@example.com", "correct-horse-battery")

	err := ExecuteAddMilestone(context.Background(), AddMilestoneInput{
		Email: "ada@example.com",
		Title: "First donation",
		Date:  fixedTime,
	}, MilestoneDeps{ParticipantStore: participants, MilestoneStore: milestones})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, ok := milestones.milestones["p1/First donation"]
	if !ok {
		t.Fatal("milestone was not persisted")
	}
	if m.ID == "" {
		t.Error("milestone has no surrogate ID")
	}
}

// TestExecuteAddMilestone_DuplicateTitle tests the natural key conflict.
func TestExecuteAddMilestone_DuplicateTitle(t *testing.T) {
	participants := newMockParticipantStore()
	milestones := newMockMilestoneStore()
	seedAccount(participants, "p1", "ada@example.com", "correct-horse-battery")
	deps := MilestoneDeps{ParticipantStore: participants, MilestoneStore: milestones}
	in := AddMilestoneInput{Email: "ada@example.com", Title: "First donation"}

	if err := ExecuteAddMilestone(context.Background(), in, deps); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := ExecuteAddMilestone(context.Background(), in, deps); !errors.Is(err, milestone.ErrTitleExists) {
		t.Errorf("expected ErrTitleExists, got %v", err)
	}
}

// TestExecuteEditMilestone_RenamesTitle tests edit-as-replace.
func TestExecuteEditMilestone_RenamesTitle(t *testing.T) {
	participants := newMockParticipantStore()
	milestones := newMockMilestoneStore()
	seedAccount(participants, "p1", "ada@example.com", "correct-horse-battery")
	deps := MilestoneDeps{ParticipantStore: participants, MilestoneStore: milestones}

	if err := ExecuteAddMilestone(context.Background(), AddMilestoneInput{
		Email: "ada@example.com", Title: "First donation",
	}, deps); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	err := ExecuteEditMilestone(context.Background(), EditMilestoneInput{
		ParticipantID: "p1",
		OldTitle:      "First donation",
		Title:         "First gift",
		Date:          fixedTime,
	}, deps)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	if _, ok := milestones.milestones["p1/First donation"]; ok {
		t.Error("old title still exists after edit")
	}
	if _, ok := milestones.milestones["p1/First gift"]; !ok {
		t.Error("new title missing after edit")
	}
}

// TestExecuteEditMilestone_EmptyTitle tests validation rejection.
func TestExecuteEditMilestone_EmptyTitle(t *testing.T) {
	participants := newMockParticipantStore()
	milestones := newMockMilestoneStore()

	err := ExecuteEditMilestone(context.Background(), EditMilestoneInput{
		ParticipantID: "p1",
		OldTitle:      "Something",
		Title:         "   ",
	}, MilestoneDeps{ParticipantStore: participants, MilestoneStore: milestones})
	if !errors.Is(err, milestone.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}
