package events

import "time"

type Actor struct {
	Type ActorType
	ID   string
}

// PetEvent es una entrada del timeline de actividad de la mascota. Es append-only.
type PetEvent struct {
	ID    string
	PetID string

	Type EventType

	OccurredAt time.Time
	RecordedAt time.Time

	Title string
	Notes string

	Actor Actor
}
