package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ActivityLeadCreated    = "lead.created"
	ActivityCommentCreated = "comment.created"
)

// ActivityPayload describes one CRM write made through the front-end.
type ActivityPayload struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	LeadID      string    `json:"lead_id"`
	LeadName    string    `json:"lead_name"`
	Status      string    `json:"status,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	SalesAgent  string    `json:"sales_agent,omitempty"`
	Author      string    `json:"author,omitempty"`
	CommentText string    `json:"comment_text,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher is the subset of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishActivity(ctx context.Context, payload ActivityPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode activity payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.ID,
			Type:         payload.Type,
			Timestamp:    payload.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}
	return nil
}
