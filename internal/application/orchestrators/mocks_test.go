package orchestrators

import (
	"context"
	"errors"
	"strings"
	"time"

	"outreach/internal/domain/donation"
	"outreach/internal/domain/event"
	"outreach/internal/domain/milestone"
	"outreach/internal/domain/participant"
	"outreach/internal/domain/survey"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// mockParticipantStore implements the participant store interfaces for testing.
type mockParticipantStore struct {
	participants map[string]participant.Participant // by ID
	saveErr      error
}

func newMockParticipantStore() *mockParticipantStore {
	return &mockParticipantStore{participants: make(map[string]participant.Participant)}
}

func (m *mockParticipantStore) GetByID(_ context.Context, id string) (participant.Participant, error) {
	p, ok := m.participants[id]
	if !ok {
		return participant.Participant{}, errors.New("not found")
	}
	return p, nil
}

func (m *mockParticipantStore) GetByEmail(_ context.Context, email string) (participant.Participant, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, p := range m.participants {
		if strings.ToLower(p.Email) == needle {
			return p, nil
		}
	}
	return participant.Participant{}, errors.New("not found")
}

func (m *mockParticipantStore) Save(_ context.Context, p participant.Participant) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.participants[p.ID] = p
	return nil
}

func (m *mockParticipantStore) Count(_ context.Context) (int, error) {
	return len(m.participants), nil
}

// mockDonationStore implements DonationStoreForRecord for testing.
type mockDonationStore struct {
	donations map[string][]donation.Donation // by participant ID
	failOnce  bool                           // inject one unique violation
}

func newMockDonationStore() *mockDonationStore {
	return &mockDonationStore{donations: make(map[string][]donation.Donation)}
}

func (m *mockDonationStore) NextNumber(_ context.Context, participantID string) (int, error) {
	max := 0
	for _, d := range m.donations[participantID] {
		if d.Number > max {
			max = d.Number
		}
	}
	return max + 1, nil
}

func (m *mockDonationStore) Insert(_ context.Context, d donation.Donation) error {
	if m.failOnce {
		m.failOnce = false
		return errors.New("constraint failed: UNIQUE constraint failed: donation.participant_id, donation.number")
	}
	for _, existing := range m.donations[d.ParticipantID] {
		if existing.Number == d.Number {
			return errors.New("constraint failed: UNIQUE constraint failed: donation.participant_id, donation.number")
		}
	}
	m.donations[d.ParticipantID] = append(m.donations[d.ParticipantID], d)
	return nil
}

// mockMilestoneStore implements MilestoneStoreForWrite for testing.
type mockMilestoneStore struct {
	milestones map[string]milestone.Milestone // by participantID+"/"+title
}

func newMockMilestoneStore() *mockMilestoneStore {
	return &mockMilestoneStore{milestones: make(map[string]milestone.Milestone)}
}

func (m *mockMilestoneStore) Insert(_ context.Context, ms milestone.Milestone) error {
	key := ms.ParticipantID + "/" + ms.Title
	if _, exists := m.milestones[key]; exists {
		return milestone.ErrTitleExists
	}
	m.milestones[key] = ms
	return nil
}

func (m *mockMilestoneStore) ReplaceByTitle(_ context.Context, participantID, oldTitle string, replacement milestone.Milestone) error {
	newKey := participantID + "/" + replacement.Title
	if _, exists := m.milestones[newKey]; exists && replacement.Title != oldTitle {
		return milestone.ErrTitleExists
	}
	delete(m.milestones, participantID+"/"+oldTitle)
	m.milestones[newKey] = replacement
	return nil
}

// mockSurveyStore implements SurveyStoreForSubmit for testing.
type mockSurveyStore struct {
	responses map[string]survey.Response // by participantID+"/"+eventID
}

func newMockSurveyStore() *mockSurveyStore {
	return &mockSurveyStore{responses: make(map[string]survey.Response)}
}

func (m *mockSurveyStore) Save(_ context.Context, r survey.Response) error {
	m.responses[r.ParticipantID+"/"+r.EventID] = r
	return nil
}

// mockEventStore implements EventStoreForSave for testing.
type mockEventStore struct {
	events map[string]event.Occurrence
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: make(map[string]event.Occurrence)}
}

func (m *mockEventStore) Save(_ context.Context, o event.Occurrence) error {
	m.events[o.ID] = o
	return nil
}

func seedAccount(store *mockParticipantStore, id, email, password string) participant.Participant {
	p := participant.Participant{
		ID: id, Email: email, FirstName: "Test", LastName: "User",
		Role: participant.RoleStandard, CreatedAt: fixedTime,
	}
	if password != "" {
		if err := p.SetPassword(password); err != nil {
			panic(err)
		}
	}
	store.participants[id] = p
	return p
}
