package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Contents lee los detalles de un bulto.
type Contents struct {
	items repository.LineItemRepository
}

// NewContents construye el store de contenidos.
func NewContents(items repository.LineItemRepository) Contents {
	return Contents{items: items}
}

// ListByPackage devuelve los detalles del bulto.
func (c Contents) ListByPackage(ctx context.Context, packageID string) ([]*entity.LineItem, error) {
	return c.items.ListByPackage(ctx, packageID)
}

// Lines devuelve los detalles del bulto como líneas de proyección.
func (c Contents) Lines(ctx context.Context, packageID string) ([]inventory.Line, error) {
	items, err := c.items.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return toLines(items), nil
}

func toLines(items []*entity.LineItem) []inventory.Line {
	lines := make([]inventory.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, inventory.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}
