// Package queue implementa la mensajería AMQP entre la API y el worker de correo.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
)

var _ usecase.MailQueuePublisher = (*Publisher)(nil)

// NotificationMessage es el mensaje que consume el worker de correo.
type NotificationMessage struct {
	NotificationID string    `json:"notificationId"`
	RecipientIDs   []string  `json:"recipientIds"`
	EnqueuedAt     time.Time `json:"enqueuedAt"`
}

// Publisher publica notificaciones pendientes de correo en RabbitMQ.
type Publisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
}

// NewPublisher conecta al broker y declara exchange y cola (ambos durables).
func NewPublisher(url, exchange, queue string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}

	p := &Publisher{conn: conn, channel: channel, exchange: exchange, queue: queue}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("declarar exchange y cola: %w", err)
	}
	return p, nil
}

func (p *Publisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// routing key = nombre de la cola (exchange direct)
	if err := p.channel.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PublishNotification encola el aviso para el worker de correo. El mensaje es
// persistente para sobrevivir reinicios del broker.
func (p *Publisher) PublishNotification(ctx context.Context, notificationID string, recipientIDs []string) error {
	body, err := json.Marshal(NotificationMessage{
		NotificationID: notificationID,
		RecipientIDs:   recipientIDs,
		EnqueuedAt:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		p.queue,    // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().
		Str("notification_id", notificationID).
		Int("recipients", len(recipientIDs)).
		Msg("notificación publicada al broker")
	return nil
}

// Consume entrega los mensajes de la cola al handler con ack manual. Un error
// del handler reencola el mensaje; un mensaje ilegible se descarta.
func (p *Publisher) Consume(ctx context.Context, handler func(NotificationMessage) error) error {
	msgs, err := p.channel.Consume(
		p.queue, // queue
		"",      // consumer
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de mensajes cerrado")
			}
			var msg NotificationMessage
			if err := json.Unmarshal(delivery.Body, &msg); err != nil {
				log.Error().Err(err).Msg("mensaje AMQP ilegible, descartado")
				_ = delivery.Nack(false, false)
				continue
			}
			if err := handler(msg); err != nil {
				log.Error().Err(err).Str("notification_id", msg.NotificationID).Msg("procesar mensaje de correo")
				_ = delivery.Nack(false, true)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

// Close libera canal y conexión.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
