package inventory

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInsufficient = errors.New("insufficient items")
)

// MaxGrant limita cada llamada a Grant (es un faucet de desarrollo, no billing).
const MaxGrant = 99

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Quantity(ctx context.Context, userID string, item ItemType) (int, error) {
	if strings.TrimSpace(userID) == "" || !item.Valid() {
		return 0, ErrInvalidInput
	}
	return s.repo.Quantity(ctx, userID, item)
}

// List devuelve todos los tipos conocidos, incluso con cantidad 0.
func (s *Service) List(ctx context.Context, userID string) ([]Item, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	stored, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byType := make(map[ItemType]Item, len(stored))
	for _, it := range stored {
		byType[it.ItemType] = it
	}

	out := make([]Item, 0, len(ItemTypes))
	for _, t := range ItemTypes {
		it, ok := byType[t]
		if !ok {
			it = Item{UserID: userID, ItemType: t}
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *Service) Grant(ctx context.Context, userID string, item ItemType, qty int) (Item, error) {
	if strings.TrimSpace(userID) == "" || !item.Valid() {
		return Item{}, ErrInvalidInput
	}
	if qty < 1 || qty > MaxGrant {
		return Item{}, ErrInvalidInput
	}

	now := s.now()
	total, err := s.repo.Add(ctx, userID, item, qty, now)
	if err != nil {
		return Item{}, err
	}
	return Item{UserID: userID, ItemType: item, Quantity: total, UpdatedAt: now}, nil
}

// Consume descuenta una unidad. Devuelve ErrInsufficient si no hay stock.
func (s *Service) Consume(ctx context.Context, userID string, item ItemType) (Item, error) {
	if strings.TrimSpace(userID) == "" || !item.Valid() {
		return Item{}, ErrInvalidInput
	}

	now := s.now()
	left, err := s.repo.Consume(ctx, userID, item, 1, now)
	if err != nil {
		return Item{}, err
	}
	return Item{UserID: userID, ItemType: item, Quantity: left, UpdatedAt: now}, nil
}
