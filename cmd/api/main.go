package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/bootstrap"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
	"github.com/jhoicas/almacen-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	stockMetrics := metrics.NewStockMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	ctx := context.Background()
	var repos bootstrap.Repos
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		if err := memory.Seed(ctx, store); err != nil {
			log.Fatal().Err(err).Msg("datos iniciales en memoria")
		}
		repos = bootstrap.MemoryRepos(store)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.Migrations.AutoRun {
			if err := migrate(ctx, cfg); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = bootstrap.Repos{
			Tx:              postgres.NewTxRunner(pool),
			Products:        postgres.NewProductRepository(pool),
			Categories:      postgres.NewCategoryRepository(pool),
			SpecialStorages: postgres.NewSpecialStorageRepository(pool),
			PackageStates:   postgres.NewPackageStateRepository(pool),
			Packages:        postgres.NewPackageRepository(pool),
			LineItems:       postgres.NewLineItemRepository(pool),
			Entries:         postgres.NewEntryRepository(pool),
			Exits:           postgres.NewExitRepository(pool),
			Movements:       postgres.NewMovementRepository(pool),
			Users:           postgres.NewUserRepository(pool),
			Roles:           postgres.NewRoleRepository(pool),
		}
	}

	deps := bootstrap.RouterDeps(repos, bootstrap.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		Recorder: stockMetrics,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, httpMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func migrate(ctx context.Context, cfg *config.Config) error {
	m, err := postgres.OpenMigrator(cfg.DB.ConnectionString(), cfg.Migrations.Dir)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up(ctx)
}
