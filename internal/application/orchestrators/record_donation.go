package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outreach/internal/adapters/email"
	"outreach/internal/adapters/storage"
	"outreach/internal/domain/donation"
)

// DonationStoreForRecord defines the store interface needed by RecordDonation.
type DonationStoreForRecord interface {
	NextNumber(ctx context.Context, participantID string) (int, error)
	Insert(ctx context.Context, d donation.Donation) error
}

// RecordDonationInput carries input for the orchestrator. The donor is
// identified by email; a contact record is created when none exists.
type RecordDonationInput struct {
	Email       string
	FirstName   string
	LastName    string
	Date        time.Time
	AmountCents int64
}

// RecordDonationResult carries the persisted donation key.
type RecordDonationResult struct {
	ParticipantID string
	Number        int
}

// RecordDonationDeps holds dependencies for RecordDonation.
type RecordDonationDeps struct {
	ParticipantStore ParticipantStoreForCreate
	DonationStore    DonationStoreForRecord
	EmailSender      email.Sender // nil disables receipts
}

// ExecuteRecordDonation resolves the donor, assigns the next per-donor
// sequence number and inserts the gift. Two writers racing on the same donor
// can pick the same number; the unique key rejects the loser and one retry
// with a fresh number resolves it. A receipt email is best-effort: delivery
// failure never fails the donation.
// PRE: AmountCents > 0 and Email is non-empty
// POST: Donation persisted under (donor, max+1); receipt queued when a sender is set
// INVARIANT: Numbers are dense per donor, starting at 1
func ExecuteRecordDonation(ctx context.Context, input RecordDonationInput, deps RecordDonationDeps) (RecordDonationResult, error) {
	participantID, err := ExecuteEnsureParticipant(ctx, EnsureParticipantInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}, EnsureParticipantDeps{ParticipantStore: deps.ParticipantStore})
	if err != nil {
		return RecordDonationResult{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	var d donation.Donation
	for attempt := 0; attempt < 2; attempt++ {
		number, err := deps.DonationStore.NextNumber(ctx, participantID)
		if err != nil {
			return RecordDonationResult{}, err
		}
		d = donation.Donation{
			ParticipantID: participantID,
			Number:        number,
			Date:          date,
			AmountCents:   input.AmountCents,
		}
		if err := d.Validate(); err != nil {
			return RecordDonationResult{}, err
		}
		err = deps.DonationStore.Insert(ctx, d)
		if err == nil {
			break
		}
		if storage.IsUniqueViolation(err) && attempt == 0 {
			slog.Warn("donation_number_race", "participant_id", participantID, "number", number)
			continue
		}
		return RecordDonationResult{}, err
	}

	slog.Info("donation_recorded", "participant_id", participantID, "number", d.Number, "amount", d.AmountDisplay())

	if deps.EmailSender != nil {
		sendReceipt(ctx, deps.EmailSender, input.Email, d)
	}

	return RecordDonationResult{ParticipantID: participantID, Number: d.Number}, nil
}

func sendReceipt(ctx context.Context, sender email.Sender, to string, d donation.Donation) {
	html := fmt.Sprintf(
		"<p>Thank you for your donation of $%s on %s.</p><p>Your gift helps fund our programs.</p>",
		d.AmountDisplay(), d.DateDisplay())
	_, err := sender.Send(ctx, email.SendRequest{
		To:      []string{to},
		Subject: "Thank you for your donation",
		HTML:    html,
	})
	if err != nil {
		slog.Error("receipt_send_failed", "error", err, "participant_id", d.ParticipantID, "number", d.Number)
	}
}
