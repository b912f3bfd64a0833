package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type MutationKind string

const (
	MutationContactCreated MutationKind = "contact.created"
	MutationContactUpdated MutationKind = "contact.updated"
	MutationContactDeleted MutationKind = "contact.deleted"
	MutationStageChanged   MutationKind = "contact.stage_changed"
	MutationEmailIngested  MutationKind = "email.ingested"
)

// MutationEvent announces a successful write so view-state holders can drop
// the cached views keyed by the owner, the contact, and the upcoming-calls
// projection.
type MutationEvent struct {
	Kind       MutationKind `json:"kind"`
	UserID     string       `json:"user_id"`
	ContactID  string       `json:"contact_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

type MutationPublisher interface {
	PublishMutation(ctx context.Context, payload MutationEvent) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishMutation(ctx context.Context, payload MutationEvent) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mutation payload marshal failed: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("mutation publish failed: %v", err)
	}

	return nil
}
