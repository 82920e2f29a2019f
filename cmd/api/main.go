package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/infrastructure/excel"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contable-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/jwt"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
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

	ctx := context.Background()

	var store repository.Store
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar esquema")
			}
			log.Info().Msg("esquema aplicado")
		}
		store = postgres.NewStore(pool)
	}
	repos := store.Repos()

	tokens := jwt.Config{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.Expiration) * time.Minute,
	}
	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, tokens)

	var m *metrics.Metrics
	if cfg.App.MetricsEnabled {
		m = metrics.New(cfg.App.Name)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(httpRouter.Metrics(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Contable API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(repos.Companies),
		UserUC:      usecase.NewUserUseCase(repos.Users),
		PartyUC:     usecase.NewPartyUseCase(store),
		ProductUC:   usecase.NewProductUseCase(store),
		InventoryUC: inventory.NewInventoryUseCase(store),
		InvoiceUC:   billing.NewInvoiceUseCase(store),
		ReturnUC:    billing.NewReturnUseCase(store),
		AccountUC:   treasury.NewAccountUseCase(store),
		VoucherUC:   treasury.NewVoucherUseCase(store),
		TransferUC:  treasury.NewTransferUseCase(store),
		DashboardUC: analytics.NewDashboardUseCase(repos.Reports),
		ReportUC:    analytics.NewReportUseCase(store, excel.NewExporter()),
		Metrics:     m,
		JWT:         tokens,
	})

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
