package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// PackageFilter filtros del listado de bultos. Location y StateID comparan por igualdad
// sin distinguir mayúsculas.
type PackageFilter struct {
	Location string
	StateID  string
}

// PackageRepository define el puerto de persistencia para Package (bulto).
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	// UpdateLocation solo cambia CurrentLocation (efecto de un movimiento).
	UpdateLocation(ctx context.Context, id, location string) error
	List(ctx context.Context, f PackageFilter, limit, offset int) ([]*entity.Package, int, error)
	ListAll(ctx context.Context) ([]*entity.Package, error)
	Delete(ctx context.Context, id string) error
}

// LineItemFilter filtros del listado de detalles. ProductName y Lot buscan por
// contenido sin distinguir mayúsculas.
type LineItemFilter struct {
	ProductName string
	Lot         string
}

// LineItemRepository define el puerto de persistencia para los detalles de bulto.
// ListByPackage es el Package Contents Store del motor de stock.
type LineItemRepository interface {
	Create(ctx context.Context, item *entity.LineItem) error
	GetByID(ctx context.Context, id string) (*entity.LineItem, error)
	Update(ctx context.Context, item *entity.LineItem) error
	Delete(ctx context.Context, id string) error
	DeleteByPackage(ctx context.Context, packageID string) error
	ListByPackage(ctx context.Context, packageID string) ([]*entity.LineItem, error)
	// PackageIDsWithItems devuelve los IDs de bultos que tienen al menos un detalle.
	PackageIDsWithItems(ctx context.Context) ([]string, error)
	List(ctx context.Context, f LineItemFilter, limit, offset int) ([]*entity.LineItem, int, error)
}
