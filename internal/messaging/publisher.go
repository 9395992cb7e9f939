package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Event types published to the player events queue. Downstream consumers
// (push notification delivery) live in a separate service.
const (
	EventProgressSaved  = "progress.saved"
	EventStoryCompleted = "story.completed"
)

// PlayerEventPayload is the message body for player lifecycle events.
type PlayerEventPayload struct {
	EventType  string    `json:"eventType"`
	UserID     string    `json:"userId"`
	Chapter    int64     `json:"chapter"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher publishes player lifecycle events.
type EventPublisher interface {
	PublishPlayerEvent(ctx context.Context, payload PlayerEventPayload) error
}

// rabbitMQEventPublisher implements EventPublisher over RabbitMQ.
type rabbitMQEventPublisher struct {
	channel   *amqp.Channel
	queueName string
}

// NewRabbitMQEventPublisher opens a dedicated channel and declares the
// durable queue. Declaring on the publisher side keeps the system tolerant of
// service start order; the consumer must declare with matching parameters.
func NewRabbitMQEventPublisher(conn *amqp.Connection, queueName string) (EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("event publisher: failed to declare queue %q: %w", queueName, err)
	}

	return &rabbitMQEventPublisher{channel: ch, queueName: queueName}, nil
}

func (p *rabbitMQEventPublisher) PublishPlayerEvent(ctx context.Context, payload PlayerEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("event publisher: failed to marshal payload: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(pubCtx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("event publisher: failed to publish %s: %w", payload.EventType, err)
	}
	return nil
}
