package pets

import "context"

// Repository persiste mascotas. GetByID y Update devuelven un error que envuelve ErrNotFound
// cuando la mascota no existe.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	ListAll(ctx context.Context) ([]Pet, error)
}
