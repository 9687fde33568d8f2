package projections

import (
	"context"
	"testing"

	"outreach/internal/domain/participant"
	"outreach/internal/domain/role"
)

// mockParticipantStore implements ParticipantStore for testing.
type mockParticipantStore struct {
	participants []participant.Participant
}

func (m *mockParticipantStore) List(_ context.Context, _ string) ([]participant.Participant, error) {
	return m.participants, nil
}

func (m *mockParticipantStore) Count(_ context.Context) (int, error) {
	return len(m.participants), nil
}

// TestQueryGetParticipantList_RoleFlags tests manager and login flags.
func TestQueryGetParticipantList_RoleFlags(t *testing.T) {
	store := &mockParticipantStore{participants: []participant.Participant{
		{ID: "p1", FirstName: "Ada", LastName: "Lovelace", Role: participant.RoleStandard, PasswordHash: "x"},
		{ID: "p2", FirstName: "Big", LastName: "Boss", Role: "m"},
		{ID: "p3", Email: "donor@example.com"},
	}}

	result, err := QueryGetParticipantList(context.Background(), GetParticipantListQuery{},
		GetParticipantListDeps{ParticipantStore: store, Policy: role.DefaultPolicy()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Participants) != 3 {
		t.Fatalf("rows = %d, want 3", len(result.Participants))
	}

	if result.Participants[0].IsManager {
		t.Error("standard role flagged as manager")
	}
	if !result.Participants[0].CanLogIn {
		t.Error("hashed account flagged as unable to log in")
	}
	if !result.Participants[1].IsManager {
		t.Error("drifted 'm' spelling not flagged as manager")
	}
	if result.Participants[2].CanLogIn {
		t.Error("password-less contact flagged as able to log in")
	}
	if result.Participants[2].Name != "(Unknown donor)" {
		t.Errorf("blank name = %q, want (Unknown donor)", result.Participants[2].Name)
	}
}
