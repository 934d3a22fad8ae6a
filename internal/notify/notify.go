// Package notify publishes domain events to RabbitMQ when a broker is
// configured. Publishing is best-effort: the API never fails a request
// because an event could not be sent.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Routing keys for published events.
const (
	KeyOrderCreated       = "order.created"
	KeyReservationCreated = "reservation.created"
)

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// Dial connects to the broker and declares the topic exchange. An empty URL
// returns a nil publisher, which disables publishing.
func Dial(url, exchange string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	if exchange == "" {
		exchange = "gastropanel.events"
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "dial amqp")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open amqp channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Wrap(err, "declare exchange")
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends one JSON event. Safe to call on a nil publisher.
func (p *Publisher) Publish(ctx context.Context, key string, event interface{}) {
	if p == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		zap.L().Warn("event marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		zap.L().Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
