package orchestrators

import (
	"context"
	"log/slog"

	"outreach/internal/domain/participant"
)

// ParticipantStoreForEdit defines the store interface needed by SaveParticipant.
type ParticipantStoreForEdit interface {
	GetByID(ctx context.Context, id string) (participant.Participant, error)
	Save(ctx context.Context, p participant.Participant) error
}

// SaveParticipantInput carries the editable fields of a participant record.
// Password and login counters are deliberately absent: staff edits never
// touch credentials.
type SaveParticipantInput struct {
	ParticipantID    string
	Email            string
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

// SaveParticipantDeps holds dependencies for SaveParticipant.
type SaveParticipantDeps struct {
	ParticipantStore ParticipantStoreForEdit
}

// ExecuteSaveParticipant applies a staff edit to an existing participant.
// PRE: ParticipantID refers to an existing record
// POST: Contact fields and role replaced; password hash untouched
func ExecuteSaveParticipant(ctx context.Context, input SaveParticipantInput, deps SaveParticipantDeps) error {
	p, err := deps.ParticipantStore.GetByID(ctx, input.ParticipantID)
	if err != nil {
		return err
	}

	p.Email = input.Email
	p.FirstName = input.FirstName
	p.LastName = input.LastName
	p.DOB = input.DOB
	p.Phone = input.Phone
	p.City = input.City
	p.State = input.State
	p.Zip = input.Zip
	p.SchoolOrEmployer = input.SchoolOrEmployer
	p.FieldOfInterest = input.FieldOfInterest
	if input.Role != "" {
		p.Role = input.Role
	}

	if err := p.Validate(); err != nil {
		return err
	}
	if err := deps.ParticipantStore.Save(ctx, p); err != nil {
		return err
	}

	slog.Info("participant_saved", "participant_id", p.ID, "role", p.Role)
	return nil
}
