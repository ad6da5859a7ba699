package memory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Seed carga los roles y estados de bulto iniciales, igual que la migración de semillas.
// Es idempotente.
func Seed(ctx context.Context, s *Store) error {
	now := time.Now()
	roles := []entity.Role{
		{ID: "6f1d2c3a-0000-4000-8000-000000000001", Name: entity.RoleAdmin},
		{ID: "6f1d2c3a-0000-4000-8000-000000000002", Name: entity.RoleBodeguero},
		{ID: "6f1d2c3a-0000-4000-8000-000000000003", Name: entity.RoleConsulta},
	}
	for _, role := range roles {
		role.CreatedAt, role.UpdatedAt = now, now
		if err := s.Roles().Create(ctx, &role); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	states := []entity.PackageState{
		{ID: "7a2e3d4b-0000-4000-8000-000000000001", Name: "Recibido"},
		{ID: "7a2e3d4b-0000-4000-8000-000000000002", Name: "En tránsito"},
		{ID: "7a2e3d4b-0000-4000-8000-000000000003", Name: "Dañado"},
	}
	for _, st := range states {
		existing, err := s.PackageStates().GetByID(ctx, st.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		st.CreatedAt, st.UpdatedAt = now, now
		if err := s.PackageStates().Create(ctx, &st); err != nil {
			return err
		}
	}
	return nil
}
