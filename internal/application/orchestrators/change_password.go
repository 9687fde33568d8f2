package orchestrators

import (
	"context"
	"log/slog"

	"outreach/internal/domain/participant"
)

// ParticipantStoreForPassword defines the store interface needed by ChangePassword.
type ParticipantStoreForPassword interface {
	GetByID(ctx context.Context, id string) (participant.Participant, error)
	Save(ctx context.Context, p participant.Participant) error
}

// ChangePasswordInput carries input for the orchestrator.
type ChangePasswordInput struct {
	ParticipantID   string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	ParticipantStore ParticipantStoreForPassword
}

// ExecuteChangePassword verifies the current password and stores a new hash.
// PRE: Participant is logged in
// POST: PasswordHash replaced on success; untouched on any failure
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	p, err := deps.ParticipantStore.GetByID(ctx, input.ParticipantID)
	if err != nil {
		return err
	}
	if err := p.CheckPassword(input.CurrentPassword); err != nil {
		slog.Info("auth_event", "event", "password_change_failed", "participant_id", input.ParticipantID, "reason", "wrong_password")
		return err
	}
	if err := p.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "password_changed", "participant_id", input.ParticipantID)
	return nil
}
