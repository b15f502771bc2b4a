package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota.
// Lo usa events.RegisterRoutes para no importar este paquete (pets -> events ya existe).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

func authorize(p Pet, userID string) error {
	if p.OwnerUserID != userID {
		return ErrForbidden
	}
	return nil
}
