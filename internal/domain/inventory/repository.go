package inventory

import (
	"context"
	"time"
)

// Repository guarda cantidades por (usuario, ítem). Un par inexistente equivale a cantidad 0.
type Repository interface {
	Quantity(ctx context.Context, userID string, item ItemType) (int, error)
	ListByUser(ctx context.Context, userID string) ([]Item, error)

	// Add suma delta (>0) y devuelve la cantidad resultante.
	Add(ctx context.Context, userID string, item ItemType, delta int, at time.Time) (int, error)

	// Consume resta n de forma atómica; si no alcanza devuelve ErrInsufficient sin modificar nada.
	Consume(ctx context.Context, userID string, item ItemType, n int, at time.Time) (int, error)
}
