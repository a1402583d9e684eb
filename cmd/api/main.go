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
	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/auth"
	"github.com/jhoicas/Alojamientos-api/internal/application/report"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/application/transfer"
	"github.com/jhoicas/Alojamientos-api/internal/application/usecase"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
	"github.com/jhoicas/Alojamientos-api/internal/infrastructure/invoicexml"
	infrapdf "github.com/jhoicas/Alojamientos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Alojamientos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Alojamientos-api/internal/infrastructure/rabbitmq"
	infraredis "github.com/jhoicas/Alojamientos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Alojamientos-api/internal/interfaces/http"
	"github.com/jhoicas/Alojamientos-api/pkg/config"
	"github.com/jhoicas/Alojamientos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
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

	unitRepo := postgres.NewUnitRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	accRepo := postgres.NewAccommodationRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	empRepo := postgres.NewEmployeeRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	inspectionRepo := postgres.NewInspectionRepository(pool)
	workHourRepo := postgres.NewWorkHourRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Auditoría: Postgres (misma base), RabbitMQ (cola durable) o desactivada.
	var auditSink repository.AuditRepository
	switch cfg.Audit.Sink {
	case config.AuditSinkPostgres:
		auditSink = postgres.NewAuditRepository(pool)
	case config.AuditSinkRabbitMQ:
		publisher, err := rabbitmq.NewAuditPublisher(cfg.Audit.RabbitMQURL, cfg.Audit.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer publisher.Close()
		auditSink = publisher
	}
	dispatcher := audit.NewDispatcher(auditSink, log)

	// Idempotencia de retiros: solo si hay Redis configurado.
	var idemStore httpRouter.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		idemStore = infraredis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: Idempotency-Key ignorada")
	}

	assignmentUC := accommodation.NewAssignmentUseCase(txRunner, accRepo, roomRepo, empRepo, dispatcher)
	ledgerUC := stock.NewLedgerUseCase(txRunner, productRepo, movRepo, empRepo, dispatcher)
	importUC := stock.NewImportEntryUseCase(txRunner, invoicexml.NewParser(), dispatcher)
	transferUC := transfer.NewUseCase(txRunner, unitRepo, empRepo, transferRepo, dispatcher)
	reportUC := report.NewUseCase(assignmentUC, unitRepo, empRepo, productRepo, movRepo, infrapdf.NewMarotoReportGenerator())

	authUC := auth.NewAuthUseCase(userRepo, unitRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    6 << 20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Alojamientos API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UnitUC:          usecase.NewUnitUseCase(unitRepo),
		AccommodationUC: usecase.NewAccommodationUseCase(txRunner, accRepo, roomRepo, dispatcher, log),
		EmployeeUC:      usecase.NewEmployeeUseCase(txRunner, empRepo, dispatcher),
		ProductUC:       usecase.NewProductUseCase(productRepo, dispatcher),
		InspectionUC:    usecase.NewInspectionUseCase(inspectionRepo, accRepo, dispatcher),
		WorkHourUC:      usecase.NewWorkHourUseCase(workHourRepo, empRepo),
		Assignments:     assignmentUC,
		Ledger:          ledgerUC,
		ImportEntry:     importUC,
		Transfers:       transferUC,
		Reports:         reportUC,
		Idempotency:     idemStore,
		JWTSecret:       cfg.JWT.Secret,
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
	// Los registros de auditoría en vuelo se completan antes de cerrar el pool.
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}
