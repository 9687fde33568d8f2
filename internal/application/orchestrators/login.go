package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"outreach/internal/domain/participant"
	"outreach/internal/domain/role"
)

// ParticipantStoreForLogin defines the store interface needed by Login.
type ParticipantStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (participant.Participant, error)
	Save(ctx context.Context, p participant.Participant) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	ParticipantID string
	Email         string
	FirstName     string
	LastName      string
	Role          string
	Level         role.Level
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	ParticipantStore ParticipantStoreForLogin
	Policy           role.Policy
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
)

// ExecuteLogin validates credentials and returns participant info for
// session creation. Failures are deliberately indistinguishable: a missing
// account and a wrong password both return ErrInvalidCredentials.
// PRE: none — empty inputs fail closed
// POST: Returns participant info on success, records failed login on failure
// INVARIANT: Account must not be locked
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	p, err := deps.ParticipantStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if p.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := p.CheckPassword(input.Password); err != nil {
		p.RecordFailedLogin()
		_ = deps.ParticipantStore.Save(ctx, p)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password", "failed_logins", p.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	p.ResetFailedLogins()
	_ = deps.ParticipantStore.Save(ctx, p)

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", p.Role)

	return LoginResult{
		ParticipantID: p.ID,
		Email:         p.Email,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Role:          p.Role,
		Level:         deps.Policy.Classify(p.Role),
	}, nil
}
