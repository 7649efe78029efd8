package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coopfondos/coopfondos-api/internal/infrastructure/postgres"
	"github.com/coopfondos/coopfondos-api/internal/infrastructure/queue"
	"github.com/coopfondos/coopfondos-api/pkg/config"
	"github.com/coopfondos/coopfondos-api/pkg/logger"
)

// Worker de correo: consume los envíos encolados por la API y despacha un
// correo por destinatario. El despacho real queda detrás de deliver; hoy
// registra la entrega en el log.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().Str("queue", cfg.AMQP.Queue).Msg("iniciando worker de correo")

	if cfg.AMQP.URL == "" {
		log.Fatal().Msg("AMQP_URL es requerido para el worker de correo")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	userRepo := postgres.NewUserRepository(pool)

	consumer, err := queue.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al broker AMQP")
	}
	defer consumer.Close()

	handler := func(msg queue.NotificationMessage) error {
		for _, recipientID := range msg.RecipientIDs {
			user, err := userRepo.GetByID(ctx, recipientID)
			if err != nil {
				return err
			}
			if user == nil {
				log.Warn().Str("user_id", recipientID).Msg("destinatario inexistente, se omite")
				continue
			}
			deliver(log, msg.NotificationID, user.Email)
		}
		return nil
	}

	if err := consumer.Consume(ctx, handler); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("consumo de la cola")
	}
	log.Info().Msg("worker de correo detenido")
}

// deliver punto de integración con el proveedor SMTP.
func deliver(log *logger.Logger, notificationID, email string) {
	log.Info().
		Str("notification_id", notificationID).
		Str("email", email).
		Msg("correo de notificación despachado")
}
