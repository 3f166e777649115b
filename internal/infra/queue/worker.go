package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/anvaya-web/pkg/logging"
)

// ActivityHandler processes one decoded activity event.
type ActivityHandler interface {
	HandleActivity(ctx context.Context, payload ActivityPayload) error
}

// Consumer is the subset of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel Consumer
	Handler ActivityHandler
	Logger  *logging.Logger
}

func NewWorker(ch Consumer, handler ActivityHandler, logger *logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Worker{
		Channel: ch,
		Handler: handler,
		Logger:  logger,
	}
}

// Start consumes queueName with manual acks until ctx is done or the
// delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register RabbitMQ consumer: %w", err)
	}

	w.Logger.Info("activity worker waiting", "queue", queueName)
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("activity worker stopped", "queue", queueName)
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.Logger.Warn("activity delivery channel closed", "queue", queueName)
				return nil
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var payload ActivityPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		// Malformed: dead-letter it rather than block the queue.
		w.Logger.Error("invalid activity payload", "error", err)
		d.Nack(false, false)
		return
	}

	if err := w.Handler.HandleActivity(ctx, payload); err != nil {
		w.Logger.Error("activity handling failed", "id", payload.ID, "type", payload.Type, "error", err)
		d.Nack(false, false)
		return
	}

	w.Logger.Info("activity handled", "id", payload.ID, "type", payload.Type, "lead_id", payload.LeadID)
	d.Ack(false)
}
