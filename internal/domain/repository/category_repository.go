package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, limit, offset int) ([]*entity.Category, int, error)
	Delete(ctx context.Context, id string) error
}

// SpecialStorageRepository define el puerto de persistencia para SpecialStorage.
type SpecialStorageRepository interface {
	Create(ctx context.Context, storage *entity.SpecialStorage) error
	GetByID(ctx context.Context, id string) (*entity.SpecialStorage, error)
	Update(ctx context.Context, storage *entity.SpecialStorage) error
	List(ctx context.Context, limit, offset int) ([]*entity.SpecialStorage, int, error)
	Delete(ctx context.Context, id string) error
}

// PackageStateRepository define el puerto de persistencia para PackageState.
type PackageStateRepository interface {
	Create(ctx context.Context, state *entity.PackageState) error
	GetByID(ctx context.Context, id string) (*entity.PackageState, error)
	Update(ctx context.Context, state *entity.PackageState) error
	List(ctx context.Context, limit, offset int) ([]*entity.PackageState, int, error)
	Delete(ctx context.Context, id string) error
}
