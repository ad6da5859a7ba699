package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ledger es el libro de existencias de productos.
type Ledger struct {
	products repository.ProductRepository
}

// NewLedger construye el ledger sobre el repositorio de productos (de la tx en curso).
func NewLedger(products repository.ProductRepository) Ledger {
	return Ledger{products: products}
}

// GetByID devuelve el producto o un NotFoundError.
func (l Ledger) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := l.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return p, nil
}

// ApplyDelta suma delta al stock del producto. El repositorio rechaza saldos negativos.
func (l Ledger) ApplyDelta(ctx context.Context, id string, delta int) (int, error) {
	return l.products.ApplyDelta(ctx, id, delta)
}

// Check bloquea los productos afectados por la proyección y verifica que ningún saldo
// quede negativo. No escribe nada.
func (l Ledger) Check(ctx context.Context, proj *inventory.Projection) error {
	ids := proj.ProductIDs()
	current := make(map[string]int, len(ids))
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		p, err := l.products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("producto", id)
		}
		current[id] = p.QuantityOnHand
		names[id] = p.Name
	}
	shortages := proj.Shortages(current)
	if len(shortages) == 0 {
		return nil
	}
	errs := make(domain.StockErrors, 0, len(shortages))
	for _, s := range shortages {
		errs = append(errs, &domain.StockError{
			ProductID:   s.ProductID,
			ProductName: names[s.ProductID],
			Available:   s.Current,
			Requested:   s.Current - s.Projected,
		})
	}
	return errs
}

// Commit aplica los cambios netos de la proyección. Llamar solo después de Check.
func (l Ledger) Commit(ctx context.Context, proj *inventory.Projection) error {
	for _, ch := range proj.Changes() {
		if _, err := l.products.ApplyDelta(ctx, ch.ProductID, ch.Delta); err != nil {
			return err
		}
	}
	return nil
}
