package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"virtual-pet/internal/domain/events"
)

type eventRepo struct {
	mu    sync.RWMutex
	byID  map[string]events.PetEvent
	byPet map[string][]string
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID:  make(map[string]events.PetEvent),
		byPet: make(map[string][]string),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.PetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	r.byPet[e.PetID] = append(r.byPet[e.PetID], e.ID)
	return nil
}

func (r *eventRepo) ListByPet(ctx context.Context, petID string, filter events.ListFilter) ([]events.PetEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = events.DefaultListLimit
	}

	out := make([]events.PetEvent, 0)

	for _, id := range r.byPet[petID] {
		e := r.byID[id]

		if len(filter.Types) > 0 {
			ok := false
			for _, t := range filter.Types {
				if e.Type == t {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Rango inclusivo sobre occurred_at
		if filter.From != nil && e.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.OccurredAt.After(*filter.To) {
			continue
		}

		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(e.Title + " " + e.Notes)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, e)
	}

	// Más reciente primero; a igual occurred_at, el último registrado primero.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].RecordedAt.After(out[j].RecordedAt)
		}
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
