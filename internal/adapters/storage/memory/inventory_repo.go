package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"virtual-pet/internal/domain/inventory"
)

type inventoryKey struct {
	userID string
	item   inventory.ItemType
}

type inventoryRepo struct {
	mu    sync.Mutex
	items map[inventoryKey]inventory.Item
}

func NewInventoryRepo() inventory.Repository {
	return &inventoryRepo{
		items: make(map[inventoryKey]inventory.Item),
	}
}

func (r *inventoryRepo) Quantity(ctx context.Context, userID string, item inventory.ItemType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.items[inventoryKey{userID, item}].Quantity, nil
}

func (r *inventoryRepo) ListByUser(ctx context.Context, userID string) ([]inventory.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]inventory.Item, 0)
	for k, it := range r.items {
		if k.userID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemType < out[j].ItemType })
	return out, nil
}

func (r *inventoryRepo) Add(ctx context.Context, userID string, item inventory.ItemType, delta int, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := inventoryKey{userID, item}
	it := r.items[k]
	it.UserID, it.ItemType = userID, item
	it.Quantity += delta
	it.UpdatedAt = at
	r.items[k] = it
	return it.Quantity, nil
}

func (r *inventoryRepo) Consume(ctx context.Context, userID string, item inventory.ItemType, n int, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := inventoryKey{userID, item}
	it, ok := r.items[k]
	if !ok || it.Quantity < n {
		return it.Quantity, inventory.ErrInsufficient
	}
	it.Quantity -= n
	it.UpdatedAt = at
	r.items[k] = it
	return it.Quantity, nil
}
