package stock

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	Packages  repository.PackageRepository
	LineItems repository.LineItemRepository
	Entries   repository.EntryRepository
	Exits     repository.ExitRepository
	Movements repository.MovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// Recorder registra el resultado de cada operación del motor (métricas).
type Recorder interface {
	Record(operation string, err error)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, error) {}
