package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Classifier determina si un bulto tiene entrada y/o salida.
type Classifier struct {
	entries repository.EntryRepository
	exits   repository.ExitRepository
}

// NewClassifier construye el clasificador.
func NewClassifier(entries repository.EntryRepository, exits repository.ExitRepository) Classifier {
	return Classifier{entries: entries, exits: exits}
}

// ClassifyPackage consulta la existencia de entrada y salida del bulto.
func (c Classifier) ClassifyPackage(ctx context.Context, packageID string) (inventory.Classification, error) {
	entry, err := c.entries.GetByPackage(ctx, packageID)
	if err != nil {
		return inventory.Classification{}, err
	}
	exit, err := c.exits.GetByPackage(ctx, packageID)
	if err != nil {
		return inventory.Classification{}, err
	}
	return inventory.Classification{HasEntry: entry != nil, HasExit: exit != nil}, nil
}
