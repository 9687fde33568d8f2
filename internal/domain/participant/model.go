package participant

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxEmailLength = 254
	MaxNameLength  = 100
)

// RoleStandard is the role value written for self-registered and
// auto-created participants. Elevated spellings are policy configuration
// (see internal/domain/role), not constants here.
const RoleStandard = "common"

// Field of interest choices offered on the signup form.
const (
	FieldArt  = "Art"
	FieldSTEM = "STEM"
	FieldBoth = "Both"
)

// ValidFieldsOfInterest contains all accepted field-of-interest values.
var ValidFieldsOfInterest = []string{FieldArt, FieldSTEM, FieldBoth}

// Domain errors
var (
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrEmptyFirstName   = errors.New("first name cannot be empty")
	ErrEmptyLastName    = errors.New("last name cannot be empty")
	ErrInvalidInterest  = errors.New("field of interest must be one of: Art, STEM, Both")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Participant holds state for one person: identity, contact details and the
// stored role token. The same record backs both login accounts and donor
// contact rows created from the public donation form.
type Participant struct {
	ID               string
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	DOB              string // YYYY-MM-DD, empty when unknown
	Phone            string
	City             string
	State            string
	Zip              string
	SchoolOrEmployer string
	FieldOfInterest  string
	Role             string
	CreatedAt        time.Time
	FailedLogins     int
	LockedUntil      time.Time
}

// FullName joins first and last name for display.
// INVARIANT: Participant fields are not mutated
func (p *Participant) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return "(Unknown donor)"
	}
	return name
}

// Validate checks if the Participant has valid data.
// PRE: Participant struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	if len(p.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(p.LastName) == "" {
		return ErrEmptyLastName
	}
	if p.FieldOfInterest != "" && !isValidInterest(p.FieldOfInterest) {
		return ErrInvalidInterest
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (p *Participant) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 12 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// A participant without a hash (auto-created donor contact) can never log in.
// PRE: none
// INVARIANT: Participant fields are not mutated
func (p *Participant) CheckPassword(plaintext string) error {
	if p.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsLocked returns true if the participant is currently locked out.
// INVARIANT: Participant fields are not mutated
func (p *Participant) IsLocked() bool {
	if p.LockedUntil.IsZero() {
		return false
	}
	return time.Now().Before(p.LockedUntil)
}

// RecordFailedLogin increments the failed login counter and locks the
// account after 5 failures.
// PRE: Participant exists
// POST: FailedLogins incremented; LockedUntil set if >= 5 failures
func (p *Participant) RecordFailedLogin() {
	p.FailedLogins++
	if p.FailedLogins >= 5 {
		p.LockedUntil = time.Now().Add(15 * time.Minute)
	}
}

// ResetFailedLogins clears the failed login counter and lock.
// PRE: Participant exists
// POST: FailedLogins is 0, LockedUntil is zero
func (p *Participant) ResetFailedLogins() {
	p.FailedLogins = 0
	p.LockedUntil = time.Time{}
}

func isValidInterest(v string) bool {
	for _, f := range ValidFieldsOfInterest {
		if f == v {
			return true
		}
	}
	return false
}
