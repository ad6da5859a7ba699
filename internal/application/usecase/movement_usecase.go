package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementUseCase traslados de bultos entre ubicaciones. No afectan stock, pero crear o editar
// un movimiento actualiza la ubicación actual del bulto en la misma transacción.
type MovementUseCase struct {
	tx        stock.TxRunner
	movements repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso. movements se usa para lecturas fuera de transacción.
func NewMovementUseCase(tx stock.TxRunner, movements repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{tx: tx, movements: movements}
}

// Create registra un traslado desde la ubicación actual del bulto hasta ToLocation.
func (uc *MovementUseCase) Create(ctx context.Context, userID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	to := strings.TrimSpace(in.ToLocation)
	if in.PackageID == "" {
		return nil, domain.NewValidationError("package_id", "es requerido")
	}
	if to == "" {
		return nil, domain.NewValidationError("to_location", "es requerido")
	}
	if userID == "" {
		return nil, domain.NewValidationError("user_id", "es requerido")
	}
	var created *entity.Movement
	err := uc.tx.Run(ctx, func(r stock.TxRepos) error {
		pkg, err := r.Packages.GetByID(ctx, in.PackageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return domain.NewNotFound("bulto", in.PackageID)
		}
		now := time.Now()
		m := &entity.Movement{
			ID:           uuid.New().String(),
			PackageID:    pkg.ID,
			UserID:       userID,
			Date:         timeOr(in.Date, now),
			FromLocation: pkg.CurrentLocation,
			ToLocation:   to,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Movements.Create(ctx, m); err != nil {
			return err
		}
		if err := r.Packages.UpdateLocation(ctx, pkg.ID, to); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toMovementResponse(created)
	return &out, nil
}

// Update edita un traslado y deja al bulto en el destino resultante.
func (uc *MovementUseCase) Update(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	var updated *entity.Movement
	err := uc.tx.Run(ctx, func(r stock.TxRepos) error {
		m, err := r.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewNotFound("movimiento", id)
		}
		if in.PackageID != nil && *in.PackageID != "" && *in.PackageID != m.PackageID {
			pkg, err := r.Packages.GetByID(ctx, *in.PackageID)
			if err != nil {
				return err
			}
			if pkg == nil {
				return domain.NewNotFound("bulto", *in.PackageID)
			}
			m.PackageID = pkg.ID
		}
		if in.FromLocation != nil {
			m.FromLocation = strings.TrimSpace(*in.FromLocation)
		}
		if in.ToLocation != nil {
			to := strings.TrimSpace(*in.ToLocation)
			if to == "" {
				return domain.NewValidationError("to_location", "es requerido")
			}
			m.ToLocation = to
		}
		m.Date = timeOr(in.Date, m.Date)
		m.UpdatedAt = time.Now()
		if err := r.Movements.Update(ctx, m); err != nil {
			return err
		}
		if err := r.Packages.UpdateLocation(ctx, m.PackageID, m.ToLocation); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toMovementResponse(updated)
	return &out, nil
}

// Delete elimina el registro del traslado. La ubicación del bulto no cambia.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	return uc.movements.Delete(ctx, id)
}

// GetByID obtiene un movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFound("movimiento", id)
	}
	out := toMovementResponse(m)
	return &out, nil
}

// List lista movimientos por usuario, bulto, origen y destino; más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	f := repository.MovementFilter{
		UserID:       in.UserID,
		PackageID:    in.PackageID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
	}
	list, total, err := uc.movements.List(ctx, f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Page: dto.NewPageResponse(in.Limit, in.Offset, total)}, nil
}

func timeOr(t *time.Time, fallback time.Time) time.Time {
	if t == nil || t.IsZero() {
		return fallback
	}
	return *t
}
