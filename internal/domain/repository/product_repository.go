package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos (coincidencia parcial sin distinguir mayúsculas).
type ProductFilter struct {
	Name       string
	CategoryID string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Es también el Product Ledger del motor de stock: GetByID / GetForUpdate / ApplyDelta.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza nombre, precio y referencias. No toca QuantityOnHand.
	Update(ctx context.Context, product *entity.Product) error
	// ApplyDelta suma delta (positivo o negativo) a QuantityOnHand y devuelve el nuevo saldo.
	// Devuelve domain.ErrNotFound si el producto no existe y un *domain.StockError
	// si el saldo resultante fuera negativo (sin escribir nada).
	ApplyDelta(ctx context.Context, id string, delta int) (int, error)
	List(ctx context.Context, f ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
