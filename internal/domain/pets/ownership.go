package pets

import (
	"context"
	"strings"
)

// OwnedBy devuelve la mascota solo si pertenece a userID.
// El resto de los módulos lo usa para validar acceso sin conocer el repo.
func (s *Service) OwnedBy(ctx context.Context, petID, userID string) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrForbidden
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != userID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}
