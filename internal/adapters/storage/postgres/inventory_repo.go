package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"virtual-pet/internal/domain/inventory"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) Quantity(ctx context.Context, userID string, item inventory.ItemType) (int, error) {
	var qty int
	err := r.db.QueryRowContext(ctx, `
		SELECT quantity FROM inventory_items
		WHERE user_id = $1 AND item_type = $2
	`, userID, string(item)).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return qty, nil
}

func (r *InventoryRepo) ListByUser(ctx context.Context, userID string) ([]inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, item_type, quantity, updated_at
		FROM inventory_items
		WHERE user_id = $1
		ORDER BY item_type ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]inventory.Item, 0)
	for rows.Next() {
		var it inventory.Item
		var typ string
		if err := rows.Scan(&it.UserID, &typ, &it.Quantity, &it.UpdatedAt); err != nil {
			return nil, err
		}
		it.ItemType = inventory.ItemType(typ)
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *InventoryRepo) Add(ctx context.Context, userID string, item inventory.ItemType, delta int, at time.Time) (int, error) {
	var qty int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO inventory_items (user_id, item_type, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, item_type)
		DO UPDATE SET quantity = inventory_items.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at
		RETURNING quantity
	`, userID, string(item), delta, at).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf("add inventory item: %w", err)
	}
	return qty, nil
}

// Consume descuenta con un UPDATE condicional: sin fila afectada no había stock suficiente.
func (r *InventoryRepo) Consume(ctx context.Context, userID string, item inventory.ItemType, n int, at time.Time) (int, error) {
	var qty int
	err := r.db.QueryRowContext(ctx, `
		UPDATE inventory_items
		SET quantity = quantity - $3, updated_at = $4
		WHERE user_id = $1 AND item_type = $2 AND quantity >= $3
		RETURNING quantity
	`, userID, string(item), n, at).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		left, qerr := r.Quantity(ctx, userID, item)
		if qerr != nil {
			return 0, qerr
		}
		return left, inventory.ErrInsufficient
	}
	if err != nil {
		return 0, fmt.Errorf("consume inventory item: %w", err)
	}
	return qty, nil
}
