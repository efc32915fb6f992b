package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FollowUpPayload is published when a lead reaches its approval status; the
// worker turns it into a follow-up task for the assigned agent.
type FollowUpPayload struct {
	LeadID     string `json:"lead_id"`
	LeadName   string `json:"lead_name"`
	AssignedTo string `json:"assigned_to"`
	Status     string `json:"status"`
}

type RabbitMQProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishFollowUp(ctx context.Context, payload FollowUpPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal follow-up payload: %w", err)
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
		return fmt.Errorf("publish follow-up: %w", err)
	}
	return nil
}
