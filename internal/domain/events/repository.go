package events

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e PetEvent) error
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]PetEvent, error)
}

type ListFilter struct {
	Types []EventType
	From  *time.Time
	To    *time.Time
	Query string
	Limit int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)
