package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"outreach/internal/domain/participant"

	"github.com/google/uuid"
)

// EnsureParticipantInput carries the contact details used when a record has
// to be created. Email is the lookup key.
type EnsureParticipantInput struct {
	Email     string
	FirstName string
	LastName  string
}

// EnsureParticipantDeps holds dependencies for EnsureParticipant.
type EnsureParticipantDeps struct {
	ParticipantStore ParticipantStoreForCreate
}

// ExecuteEnsureParticipant resolves an email to a participant ID, creating a
// minimal password-less contact record when none exists. Every form that
// accepts a free-typed donor or attendee email funnels through here, so a
// donation, survey or milestone can never reference a missing person.
// PRE: email is non-empty
// POST: Returns an existing or freshly created participant ID
// INVARIANT: Created records have no password hash and cannot log in
func ExecuteEnsureParticipant(ctx context.Context, input EnsureParticipantInput, deps EnsureParticipantDeps) (string, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return "", participant.ErrEmptyEmail
	}

	existing, err := deps.ParticipantStore.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}

	first := strings.TrimSpace(input.FirstName)
	last := strings.TrimSpace(input.LastName)
	if first == "" {
		first = "Unknown"
	}
	if last == "" {
		last = "Donor"
	}

	p := participant.Participant{
		ID:        uuid.New().String(),
		Email:     email,
		FirstName: first,
		LastName:  last,
		Role:      participant.RoleStandard,
		CreatedAt: time.Now(),
	}
	if err := p.Validate(); err != nil {
		return "", err
	}
	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return "", err
	}

	slog.Info("participant_autocreated", "email", email, "participant_id", p.ID)
	return p.ID, nil
}
