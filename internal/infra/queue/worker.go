package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ViewInvalidator is the consumer side of the write-through invalidation
// contract: it drops every cached view the event touches.
type ViewInvalidator interface {
	InvalidateContactViews(ctx context.Context, userID, contactID string) error
}

// Worker consumes mutation events and keeps the view cache coherent.
type Worker struct {
	Channel     *amqp.Channel
	Invalidator ViewInvalidator
}

func NewWorker(ch *amqp.Channel, invalidator ViewInvalidator) *Worker {
	return &Worker{
		Channel:     ch,
		Invalidator: invalidator,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack off, acks are manual
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("rabbitmq consumer registration failed: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload MutationEvent
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] malformed mutation event: %s", err)
				// Poison message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			if err := w.Invalidator.InvalidateContactViews(context.Background(), payload.UserID, payload.ContactID); err != nil {
				log.Printf("[WORKER] invalidation failed for user=%s contact=%s: %s", payload.UserID, payload.ContactID, err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] invalidation worker waiting on queue '%s'", queueName)
	<-forever
}
