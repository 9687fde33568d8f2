package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"outreach/internal/domain/event"
)

// TestExecuteSaveEvent_New tests inserting a fresh occurrence.
func TestExecuteSaveEvent_New(t *testing.T) {
	store := newMockEventStore()

	id, err := ExecuteSaveEvent(context.Background(), SaveEventInput{
		Name:     "Spring Gala",
		Location: "Main Hall",
		StartAt:  fixedTime,
		EndAt:    fixedTime.Add(2 * time.Hour),
	}, SaveEventDeps{EventStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated ID")
	}
	if _, ok := store.events[id]; !ok {
		t.Error("occurrence was not persisted")
	}
}

// TestExecuteSaveEvent_Edit tests that a present ID updates in place.
func TestExecuteSaveEvent_Edit(t *testing.T) {
	store := newMockEventStore()
	store.events["e1"] = event.Occurrence{ID: "e1", Name: "Old Name"}

	id, err := ExecuteSaveEvent(context.Background(), SaveEventInput{
		ID:   "e1",
		Name: "New Name",
	}, SaveEventDeps{EventStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "e1" {
		t.Errorf("id = %q, want e1", id)
	}
	if store.events["e1"].Name != "New Name" {
		t.Errorf("Name = %q, want New Name", store.events["e1"].Name)
	}
	if len(store.events) != 1 {
		t.Errorf("events = %d, want 1", len(store.events))
	}
}

// TestExecuteSaveEvent_EndBeforeStart tests validation rejection.
func TestExecuteSaveEvent_EndBeforeStart(t *testing.T) {
	store := newMockEventStore()

	_, err := ExecuteSaveEvent(context.Background(), SaveEventInput{
		Name:    "Backwards",
		StartAt: fixedTime,
		EndAt:   fixedTime.Add(-time.Hour),
	}, SaveEventDeps{EventStore: store})
	if !errors.Is(err, event.ErrEndBeforeTop) {
		t.Errorf("expected ErrEndBeforeTop, got %v", err)
	}
}
