package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers shift events to the broker. Publish errors are
// logged and returned so callers can choose to ignore them without
// interrupting the main request flow.
type Publisher interface {
	Publish(ctx context.Context, event ShiftEvent) error
	Close() error
}

type amqpPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewPublisher connects to the broker and declares the queue. The queue
// is durable so events survive broker restarts.
func NewPublisher(url, queue string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &amqpPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event ShiftEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal shift event", "type", event.Type, "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		slog.Error("failed to publish shift event", "type", event.Type, "shift_id", event.ShiftID, "error", err)
		return err
	}

	return nil
}

func (p *amqpPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards events. Used when
// no broker is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(ctx context.Context, event ShiftEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
