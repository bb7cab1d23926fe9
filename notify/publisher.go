// Package notify publishes catalog refresh events to RabbitMQ.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/brequin/listings/config"
	"github.com/brequin/listings/importer"
)

// Publisher dials the broker for every event. Refreshes are rare, so no
// connection is held between them.
type Publisher struct {
	url    string
	queue  string
	logger *zap.Logger
}

func NewPublisher(cfg config.AMQPConfig, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{url: cfg.URL, queue: cfg.Queue, logger: logger}
}

func (p *Publisher) Name() string {
	return "amqp"
}

func (p *Publisher) Publish(ctx context.Context, snapshot *importer.Snapshot) error {
	return p.PublishEvent(ctx, NewCatalogRefreshedEvent(snapshot))
}

// PublishEvent sends event as a persistent message to the configured
// queue through the default exchange. The queue is declared durable.
func (p *Publisher) PublishEvent(ctx context.Context, event CatalogRefreshedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RunID.String(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}

	p.logger.Info("catalog refresh published",
		zap.String("queue", p.queue),
		zap.Stringer("run", event.RunID),
	)
	return nil
}
