package orchestrators

import (
	"context"
	"errors"
	"testing"

	"outreach/internal/domain/role"
)

// TestExecuteLogin_Success tests a valid login returns session info.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockParticipantStore()
	seedAccount(store, "p1", "ada@example.com", "correct-horse-battery")

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "correct-horse-battery",
	}, LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ParticipantID != "p1" {
		t.Errorf("ParticipantID = %q, want p1", result.ParticipantID)
	}
	if result.Level != role.Standard {
		t.Errorf("Level = %v, want Standard", result.Level)
	}
}

// TestExecuteLogin_ElevatedLevel tests that a manager role classifies as elevated.
func TestExecuteLogin_ElevatedLevel(t *testing.T) {
	store := newMockParticipantStore()
	p := seedAccount(store, "p1", "boss@example.com", "correct-horse-battery")
	p.Role = "m" // drifted stored spelling
	store.participants["p1"] = p

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "boss@example.com",
		Password: "correct-horse-battery",
	}, LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Level != role.Elevated {
		t.Errorf("Level = %v, want Elevated", result.Level)
	}
}

// TestExecuteLogin_WrongPassword tests that failures are indistinguishable
// and recorded.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockParticipantStore()
	seedAccount(store, "p1", "ada@example.com", "correct-horse-battery")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "wrong-password-here",
	}, LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.participants["p1"].FailedLogins != 1 {
		t.Errorf("FailedLogins = %d, want 1", store.participants["p1"].FailedLogins)
	}
}

// TestExecuteLogin_UnknownEmail tests the same error as a wrong password.
func TestExecuteLogin_UnknownEmail(t *testing.T) {
	store := newMockParticipantStore()

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	}, LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestExecuteLogin_EmptyInputs tests that blanks fail closed.
func TestExecuteLogin_EmptyInputs(t *testing.T) {
	store := newMockParticipantStore()
	for _, in := range []LoginInput{{}, {Email: "a@b.c"}, {Password: "x"}} {
		if _, err := ExecuteLogin(context.Background(), in, LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()}); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("input %+v: expected ErrInvalidCredentials, got %v", in, err)
		}
	}
}

// TestExecuteLogin_LockoutAfterFiveFailures tests the lockout threshold.
func TestExecuteLogin_LockoutAfterFiveFailures(t *testing.T) {
	store := newMockParticipantStore()
	seedAccount(store, "p1", "ada@example.com", "correct-horse-battery")
	deps := LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()}

	for i := 0; i < 5; i++ {
		_, err := ExecuteLogin(context.Background(), LoginInput{
			Email:    "ada@example.com",
			Password: "wrong-password-here",
		}, deps)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Even the correct password is rejected while locked.
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "ada@example.com",
		Password: "correct-horse-battery",
	}, deps)
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("expected ErrAccountLocked, got %v", err)
	}
}

// TestExecuteLogin_PasswordlessContact tests that auto-created donor
// contacts can never log in.
func TestExecuteLogin_PasswordlessContact(t *testing.T) {
	store := newMockParticipantStore()
	seedAccount(store, "p1", "donor@example.com", "")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "donor@example.com",
		Password: "any-password-at-all",
	}, LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestExecuteLogin_SuccessResetsFailures tests counter reset on success.
func TestExecuteLogin_SuccessResetsFailures(t *testing.T) {
	store := newMockParticipantStore()
	seedAccount(store, "p1", "ada@example.com", "correct-horse-battery")
	deps := LoginDeps{ParticipantStore: store, Policy: role.DefaultPolicy()}

	for i := 0; i < 3; i++ {
		_, _ = ExecuteLogin(context.Background(), LoginInput{Email: "ada@example.com", Password: "wrong-password-here"}, deps)
	}
	if _, err := ExecuteLogin(context.Background(), LoginInput{Email: "ada@example.com", Password: "correct-horse-battery"}, deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.participants["p1"].FailedLogins != 0 {
		t.Errorf("FailedLogins = %d, want 0 after success", store.participants["p1"].FailedLogins)
	}
}
