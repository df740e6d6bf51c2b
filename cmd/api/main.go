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
	"github.com/jhoicas/Obra-api/internal/application/auth"
	"github.com/jhoicas/Obra-api/internal/application/organization"
	"github.com/jhoicas/Obra-api/internal/application/ports"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"github.com/jhoicas/Obra-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Obra-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Obra-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Obra-api/internal/interfaces/http"
	"github.com/jhoicas/Obra-api/pkg/config"
	"github.com/jhoicas/Obra-api/pkg/jwt"
	"github.com/jhoicas/Obra-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New(cfg.Metrics.Namespace)
	m.RegisterPool(cfg.Metrics.Namespace, pool)

	// Comprobantes: sin bucket los materiales se registran sin archivo.
	var receipts ports.ReceiptStore
	if cfg.Storage.Enabled() {
		store, err := storage.NewS3ReceiptStore(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		receipts = store
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("almacenamiento de comprobantes habilitado")
	} else {
		log.Warn().Msg("S3_BUCKET vacío: comprobantes deshabilitados")
	}

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	materialTypeRepo := postgres.NewMaterialTypeRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	organizationRepo := postgres.NewOrganizationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ErrorHandler: httpRouter.ErrorHandler(log),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log, m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Obra API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Resolver:       tenant.NewResolver(jwt.NewVerifier(cfg.JWT.Secret)),
		Gate:           tenant.NewGate(m),
		AuthUC:         authUC,
		DashboardUC:    usecase.NewDashboardUseCase(dashboardRepo),
		ProjectUC:      usecase.NewProjectUseCase(projectRepo),
		VendorUC:       usecase.NewVendorUseCase(vendorRepo),
		MaterialTypeUC: usecase.NewMaterialTypeUseCase(materialTypeRepo),
		MaterialUC:     usecase.NewMaterialUseCase(materialRepo, vendorRepo, materialTypeRepo, projectRepo, receipts),
		ExpenseUC:      usecase.NewExpenseUseCase(expenseRepo, projectRepo, vendorRepo),
		UserUC:         usecase.NewUserUseCase(userRepo),
		OrganizationUC: organization.NewUseCase(organizationRepo, txRunner),
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
