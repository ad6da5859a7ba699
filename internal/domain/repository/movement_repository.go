package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RecordFilter filtros comunes de entradas y salidas.
type RecordFilter struct {
	UserID    string
	PackageID string
}

// EntryRepository define el puerto de persistencia para Entry (entrada).
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	// GetByPackage devuelve la entrada del bulto o nil si no tiene.
	GetByPackage(ctx context.Context, packageID string) (*entity.Entry, error)
	Update(ctx context.Context, entry *entity.Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f RecordFilter, limit, offset int) ([]*entity.Entry, int, error)
}

// ExitRepository define el puerto de persistencia para Exit (salida).
type ExitRepository interface {
	Create(ctx context.Context, exit *entity.Exit) error
	GetByID(ctx context.Context, id string) (*entity.Exit, error)
	// GetByPackage devuelve la salida del bulto o nil si no tiene.
	GetByPackage(ctx context.Context, packageID string) (*entity.Exit, error)
	Update(ctx context.Context, exit *entity.Exit) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f RecordFilter, limit, offset int) ([]*entity.Exit, int, error)
}

// MovementFilter filtros del listado de movimientos.
type MovementFilter struct {
	UserID       string
	PackageID    string
	FromLocation string
	ToLocation   string
}

// MovementRepository define el puerto de persistencia para Movement (traslado de ubicación).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id string) error
	DeleteByPackage(ctx context.Context, packageID string) error
	List(ctx context.Context, f MovementFilter, limit, offset int) ([]*entity.Movement, int, error)
}
