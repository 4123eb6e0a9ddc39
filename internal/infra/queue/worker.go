package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSender is the contract the worker needs from the mail layer.
type NotificationSender interface {
	SendCallSummary(to string, payload LeadActivityPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  NotificationSender
}

func NewWorker(ch *amqp.Channel, mailer NotificationSender) *Worker {
	return &Worker{Channel: ch, Mailer: mailer}
}

// Start consumes lead-activity events and mails a call summary to the owning
// telecaller. Manual acks; malformed or undeliverable messages go to the DLQ.
func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadActivityPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] invalid JSON, dropping to DLQ: %s", err)
				d.Nack(false, false)
				continue
			}

			if payload.TelecallerEmail == "" {
				// Nothing to notify; ack and move on.
				d.Ack(false)
				continue
			}

			if err := w.Mailer.SendCallSummary(payload.TelecallerEmail, payload); err != nil {
				log.Printf("[worker] call summary mail failed for lead %s: %s", payload.LeadID, err)
				d.Nack(false, false)
				continue
			}

			log.Printf("[worker] call summary sent to %s (lead %s)", payload.TelecallerEmail, payload.LeadID)
			d.Ack(false)
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}
