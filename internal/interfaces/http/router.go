package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CatalogUseCase[entity.Category]
	SpecialStorageUC *usecase.CatalogUseCase[entity.SpecialStorage]
	PackageStateUC   *usecase.CatalogUseCase[entity.PackageState]
	PackageUC        *usecase.PackageUseCase
	StockUC          *usecase.StockUseCase
	MovementUC       *usecase.MovementUseCase
	UserUC           *usecase.UserUseCase
	RoleUC           *usecase.RoleUseCase
	ExportUC         *export.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Las lecturas están abiertas a cualquier usuario
// autenticado; las escrituras requieren admin o bodeguero; usuarios y roles solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	write := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	admin := RequireRole(entity.RoleAdmin)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", write, productHandler.Create)
	products.Put("/:id", write, productHandler.Update)
	products.Delete("/:id", write, productHandler.Delete)

	catalog(protected.Group("/categories"), NewCatalogHandler(deps.CategoryUC, "category", "categoría"), write)
	catalog(protected.Group("/special-storages"), NewCatalogHandler(deps.SpecialStorageUC, "special_storage", "almacenamiento especial"), write)
	catalog(protected.Group("/package-states"), NewCatalogHandler(deps.PackageStateUC, "package_state", "estado de bulto"), write)

	packages := protected.Group("/packages")
	packageHandler := NewPackageHandler(deps.PackageUC)
	exportHandler := NewExportHandler(deps.ExportUC)
	packages.Get("/", packageHandler.List)
	packages.Get("/options/entry", packageHandler.EntryOptions)
	packages.Get("/options/exit", packageHandler.ExitOptions)
	packages.Get("/:id", packageHandler.GetByID)
	packages.Get("/:id/manifest", exportHandler.Manifest)
	packages.Post("/", write, packageHandler.Create)
	packages.Put("/:id", write, packageHandler.Update)
	packages.Delete("/:id", write, packageHandler.Delete)

	stockHandler := NewStockHandler(deps.StockUC)
	lines := protected.Group("/line-items")
	lines.Get("/", stockHandler.ListLineItems)
	lines.Get("/:id", stockHandler.GetLineItem)
	lines.Post("/", write, stockHandler.CreateLineItem)
	lines.Put("/:id", write, stockHandler.UpdateLineItem)
	lines.Delete("/:id", write, stockHandler.DeleteLineItem)

	entries := protected.Group("/entries")
	entries.Get("/", stockHandler.ListEntries)
	entries.Get("/:id", stockHandler.GetEntry)
	entries.Post("/", write, stockHandler.CreateEntry)
	entries.Put("/:id", write, stockHandler.UpdateEntry)
	entries.Delete("/:id", write, stockHandler.DeleteEntry)

	exits := protected.Group("/exits")
	exits.Get("/", stockHandler.ListExits)
	exits.Get("/:id", stockHandler.GetExit)
	exits.Post("/", write, stockHandler.CreateExit)
	exits.Put("/:id", write, stockHandler.UpdateExit)
	exits.Delete("/:id", write, stockHandler.DeleteExit)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", write, movementHandler.Create)
	movements.Put("/:id", write, movementHandler.Update)
	movements.Delete("/:id", write, movementHandler.Delete)

	protected.Get("/export/:entity", exportHandler.Workbook)

	userHandler := NewUserHandler(deps.UserUC, deps.RoleUC)
	users := protected.Group("/users", admin)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	roles := protected.Group("/roles", admin)
	roles.Get("/", userHandler.ListRoles)
	roles.Post("/", userHandler.CreateRole)
	roles.Put("/:id", userHandler.UpdateRole)
	roles.Delete("/:id", userHandler.DeleteRole)
}

func catalog[T any](g fiber.Router, h *CatalogHandler[T], write fiber.Handler) {
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Post("/", write, h.Create)
	g.Put("/:id", write, h.Update)
	g.Delete("/:id", write, h.Delete)
}
