// Package bootstrap arma el grafo de casos de uso sobre un conjunto de repositorios,
// sea Postgres o el almacén en memoria.
package bootstrap

import (
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
)

// Repos repositorios fuera de transacción más el ejecutor de transacciones del motor.
type Repos struct {
	Tx              stock.TxRunner
	Products        repository.ProductRepository
	Categories      repository.CategoryRepository
	SpecialStorages repository.SpecialStorageRepository
	PackageStates   repository.PackageStateRepository
	Packages        repository.PackageRepository
	LineItems       repository.LineItemRepository
	Entries         repository.EntryRepository
	Exits           repository.ExitRepository
	Movements       repository.MovementRepository
	Users           repository.UserRepository
	Roles           repository.RoleRepository
}

// MemoryRepos expone un memory.Store como Repos.
func MemoryRepos(s *memory.Store) Repos {
	return Repos{
		Tx:              s,
		Products:        s.Products(),
		Categories:      s.Categories(),
		SpecialStorages: s.SpecialStorages(),
		PackageStates:   s.PackageStates(),
		Packages:        s.Packages(),
		LineItems:       s.LineItems(),
		Entries:         s.Entries(),
		Exits:           s.Exits(),
		Movements:       s.Movements(),
		Users:           s.Users(),
		Roles:           s.Roles(),
	}
}

// Options parámetros ajenos a la persistencia.
type Options struct {
	JWT      auth.JWTConfig
	Recorder stock.Recorder // métricas del motor; puede ser nil
}

// RouterDeps construye el motor de stock y todos los casos de uso.
func RouterDeps(r Repos, opts Options) apphttp.RouterDeps {
	engine := stock.NewEngine(r.Tx, opts.Recorder)
	packages := usecase.NewPackageUseCase(usecase.PackageRepos{
		Packages:  r.Packages,
		States:    r.PackageStates,
		LineItems: r.LineItems,
		Products:  r.Products,
		Entries:   r.Entries,
		Exits:     r.Exits,
		Movements: r.Movements,
	}, engine)

	return apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(r.Users, opts.JWT),
		ProductUC:        usecase.NewProductUseCase(r.Products, r.Categories, r.SpecialStorages),
		CategoryUC:       usecase.NewCategoryUseCase(r.Categories),
		SpecialStorageUC: usecase.NewSpecialStorageUseCase(r.SpecialStorages),
		PackageStateUC:   usecase.NewPackageStateUseCase(r.PackageStates),
		PackageUC:        packages,
		StockUC: usecase.NewStockUseCase(engine, usecase.StockRepos{
			LineItems: r.LineItems,
			Entries:   r.Entries,
			Exits:     r.Exits,
			Packages:  r.Packages,
			Products:  r.Products,
			Users:     r.Users,
		}),
		MovementUC: usecase.NewMovementUseCase(r.Tx, r.Movements),
		UserUC:     usecase.NewUserUseCase(r.Users, r.Roles),
		RoleUC:     usecase.NewRoleUseCase(r.Roles),
		ExportUC: export.NewUseCase(export.Repos{
			Products:        r.Products,
			Categories:      r.Categories,
			SpecialStorages: r.SpecialStorages,
			States:          r.PackageStates,
			Packages:        r.Packages,
			LineItems:       r.LineItems,
			Entries:         r.Entries,
			Exits:           r.Exits,
			Movements:       r.Movements,
			Users:           r.Users,
		}, packages, xlsx.NewWriter(), pdf.NewManifestGenerator()),
		JWTSecret: opts.JWT.Secret,
	}
}
