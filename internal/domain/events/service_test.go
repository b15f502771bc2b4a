package events

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	items []PetEvent
	last  ListFilter
}

func (r *testRepo) Create(ctx context.Context, e PetEvent) error {
	r.items = append(r.items, e)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]PetEvent, error) {
	r.last = filter
	out := make([]PetEvent, 0)
	for _, e := range r.items {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

func newTestService(now time.Time) (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsOccurredAtToNow(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	e, err := svc.Create(context.Background(), "pet-1", Actor{Type: ActorTypeOwnerUser, ID: "u1"}, CreateInput{
		Type:  EventTypeFed,
		Title: "  Fed  ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, now, e.OccurredAt)
	assert.Equal(t, now, e.RecordedAt)
	assert.Equal(t, "Fed", e.Title)
	require.Len(t, repo.items, 1)
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService(time.Now())
	owner := Actor{Type: ActorTypeOwnerUser, ID: "u1"}

	tests := []struct {
		name  string
		petID string
		actor Actor
		in    CreateInput
	}{
		{name: "missing pet", petID: " ", actor: owner, in: CreateInput{Type: EventTypeFed}},
		{name: "unknown type", petID: "p", actor: owner, in: CreateInput{Type: "NOTE"}},
		{name: "missing actor id", petID: "p", actor: Actor{Type: ActorTypeOwnerUser}, in: CreateInput{Type: EventTypeFed}},
		{name: "missing actor type", petID: "p", actor: Actor{ID: "u1"}, in: CreateInput{Type: EventTypeFed}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.petID, tc.actor, tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_ListByPet_NormalizesLimit(t *testing.T) {
	svc, repo := newTestService(time.Now())

	_, err := svc.ListByPet(context.Background(), "p", ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, DefaultListLimit, repo.last.Limit)

	_, err = svc.ListByPet(context.Background(), "p", ListFilter{Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, repo.last.Limit)
}

func TestService_ListByPet_RejectsBadFilters(t *testing.T) {
	svc, _ := newTestService(time.Now())
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	_, err := svc.ListByPet(context.Background(), "p", ListFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListByPet(context.Background(), "p", ListFilter{Types: []EventType{"BATH"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SystemActor(t *testing.T) {
	svc, _ := newTestService(time.Now())
	e, err := svc.Create(context.Background(), "p", SystemActor, CreateInput{Type: EventTypeEnteredCritical})
	require.NoError(t, err)
	assert.Equal(t, ActorTypeSystem, e.Actor.Type)
}
