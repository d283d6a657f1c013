// Package events publishes order lifecycle events for downstream
// consumers (notifications, analytics). Publishing is best effort: a
// broker outage never fails a checkout.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const orderConfirmedTopic = "order-confirmed"

// messageWriter is the slice of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  orderConfirmedTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, timeout: 5 * time.Second}
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	if c, ok := p.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// OrderConfirmed emits the confirmation event keyed by order id for
// per-order ordering. Errors are returned so callers can log them, but
// the checkout outcome never depends on the broker.
func (p *Publisher) OrderConfirmed(ctx context.Context, order *domain.Order) error {
	payload := map[string]interface{}{
		"event_id":     uuid.NewString(),
		"order_id":     order.ID,
		"items":        order.Items,
		"total_price":  order.TotalPrice,
		"confirmed_at": time.Now(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: payloadJSON,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.confirmed")},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	log.Printf("published order.confirmed for order %s", order.ID)
	return nil
}
