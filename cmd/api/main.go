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

	"github.com/coopfondos/coopfondos-api/internal/application/auth"
	"github.com/coopfondos/coopfondos-api/internal/application/reports"
	"github.com/coopfondos/coopfondos-api/internal/application/uploads"
	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
	infraexcel "github.com/coopfondos/coopfondos-api/internal/infrastructure/excel"
	infraodoo "github.com/coopfondos/coopfondos-api/internal/infrastructure/odoo"
	infrapdf "github.com/coopfondos/coopfondos-api/internal/infrastructure/pdf"
	"github.com/coopfondos/coopfondos-api/internal/infrastructure/postgres"
	"github.com/coopfondos/coopfondos-api/internal/infrastructure/queue"
	httpRouter "github.com/coopfondos/coopfondos-api/internal/interfaces/http"
	"github.com/coopfondos/coopfondos-api/pkg/config"
	"github.com/coopfondos/coopfondos-api/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	userRepo := postgres.NewUserRepository(pool)
	coopRepo := postgres.NewCooperativeRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	cashFlowRepo := postgres.NewCashFlowRepository(pool)
	feeRepo := postgres.NewFeeRepository(pool)
	ratioRepo := postgres.NewRatioRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	uploadRepo := postgres.NewUploadRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)

	// Broker de correo: opcional. Sin AMQP_URL las notificaciones quedan solo
	// en la base de datos.
	var publisher usecase.MailQueuePublisher
	if cfg.AMQP.URL != "" {
		p, err := queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión al broker AMQP")
		}
		defer p.Close()
		publisher = p
	} else {
		log.Warn().Msg("AMQP_URL vacío: los correos de notificación no se encolarán")
	}

	authUC := auth.NewAuthUseCase(userRepo, coopRepo, activityRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	cooperativeUC := usecase.NewCooperativeUseCase(coopRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, userRepo, feeRepo, publisher)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, infraodoo.NewClient())

	balanceUC := reports.NewBalanceUseCase(balanceRepo)
	cashFlowUC := reports.NewCashFlowUseCase(cashFlowRepo)
	feesUC := reports.NewFeesUseCase(feeRepo)
	ratiosUC := reports.NewRatiosUseCase(ratioRepo)
	kpiUC := reports.NewKPIUseCase(balanceRepo, cashFlowRepo, feeRepo)
	exportUC := reports.NewExportUseCase(
		coopRepo, balanceUC, cashFlowUC, feesUC, ratiosUC,
		infraexcel.NewExporter(), infrapdf.NewBalancePDFBuilder(),
	)
	uploadUC := uploads.NewUploadUseCase(
		balanceRepo, cashFlowRepo, feeRepo, ratioRepo,
		uploadRepo, activityRepo, infraexcel.NewParser(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20, // margen sobre el límite de carga de 10 MB
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CoopFondos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CooperativeUC:  cooperativeUC,
		UserUC:         userUC,
		NotificationUC: notificationUC,
		SettingsUC:     settingsUC,
		BalanceUC:      balanceUC,
		CashFlowUC:     cashFlowUC,
		FeesUC:         feesUC,
		RatiosUC:       ratiosUC,
		KPIUC:          kpiUC,
		ExportUC:       exportUC,
		UploadUC:       uploadUC,
		JWTSecret:      cfg.JWT.Secret,
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
