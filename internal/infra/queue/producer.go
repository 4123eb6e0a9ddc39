package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadActivityPayload is emitted whenever a call lands on connected. The
// worker turns it into a notification mail for the owning telecaller.
type LeadActivityPayload struct {
	LeadID          string     `json:"lead_id"`
	LeadName        string     `json:"lead_name"`
	LeadPhone       string     `json:"lead_phone"`
	Status          string     `json:"status"`
	Response        string     `json:"response"`
	TelecallerID    string     `json:"telecaller_id"`
	TelecallerName  string     `json:"telecaller_name"`
	TelecallerEmail string     `json:"telecaller_email"`
	CallDate        *time.Time `json:"call_date,omitempty"`
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishLeadActivity(ctx context.Context, payload LeadActivityPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead activity: %w", err)
	}

	return nil
}
