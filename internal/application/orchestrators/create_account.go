package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"outreach/internal/domain/participant"
	"outreach/internal/domain/role"

	"github.com/google/uuid"
)

// ParticipantStoreForCreate defines the store interface needed by CreateAccount.
type ParticipantStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (participant.Participant, error)
	Save(ctx context.Context, p participant.Participant) error
	Count(ctx context.Context) (int, error)
}

// CreateAccountInput carries input for the orchestrator. Role is the stored
// role token; self-registration always passes participant.RoleStandard,
// only the staff user-management form may pass anything else.
type CreateAccountInput struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	DOB              string
	Phone            string
	City             string
	State            string
	Zip              string
	SchoolOrEmployer string
	FieldOfInterest  string
	Role             string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	ParticipantStore ParticipantStoreForCreate
}

var ErrEmailAlreadyExists = errors.New("an account with this email already exists")

// ExecuteCreateAccount coordinates account creation.
// PRE: Valid email, password >= 12 chars
// POST: Participant created with hashed password
// INVARIANT: Email must be unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	// Check if email already exists. An auto-created donor contact counts:
	// it has no password, so signup under its email would silently take it over.
	_, err := deps.ParticipantStore.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrEmailAlreadyExists
	}

	p := participant.Participant{
		ID:               uuid.New().String(),
		Email:            input.Email,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		DOB:              input.DOB,
		Phone:            input.Phone,
		City:             input.City,
		State:            input.State,
		Zip:              input.Zip,
		SchoolOrEmployer: input.SchoolOrEmployer,
		FieldOfInterest:  input.FieldOfInterest,
		Role:             input.Role,
		CreatedAt:        time.Now(),
	}
	if p.Role == "" {
		p.Role = participant.RoleStandard
	}

	if err := p.Validate(); err != nil {
		return "", err
	}
	if err := p.SetPassword(input.Password); err != nil {
		return "", err
	}

	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return "", err
	}

	slog.Info("auth_event", "event", "account_created", "email", input.Email, "role", p.Role)

	return p.ID, nil
}

// ExecuteSeedManager creates a default manager account if the participant
// table is empty, so a fresh deployment has a way in.
// PRE: Database is initialized
// POST: Manager account created if count == 0
func ExecuteSeedManager(ctx context.Context, deps CreateAccountDeps, email, password string) error {
	count, err := deps.ParticipantStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:     email,
		Password:  password,
		FirstName: "Site",
		LastName:  "Manager",
		Role:      role.Canonical,
	}, deps)
	if err != nil {
		return err
	}
	slog.Info("auth_event", "event", "manager_seeded", "email", email)
	return nil
}
