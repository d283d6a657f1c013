package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	m    sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.m.Lock()
	defer w.m.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestOrderConfirmed_PublishesKeyedByOrderID(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w, timeout: time.Second}

	order := &domain.Order{
		ID:         "ORD-1",
		TotalPrice: 280000,
		Items:      []domain.CartItem{{ProductID: "a", UnitPrice: 100000, Quantity: 2}},
	}
	require.NoError(t, p.OrderConfirmed(context.Background(), order))

	w.m.Lock()
	defer w.m.Unlock()
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, []byte("ORD-1"), msg.Key)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "ORD-1", payload["order_id"])
	assert.Equal(t, float64(280000), payload["total_price"])
	assert.NotEmpty(t, payload["event_id"])

	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("order.confirmed"), msg.Headers[0].Value)
}

func TestOrderConfirmed_WriterError(t *testing.T) {
	w := &mockWriter{err: assert.AnError}
	p := &Publisher{writer: w, timeout: time.Second}

	err := p.OrderConfirmed(context.Background(), &domain.Order{ID: "ORD-1"})
	assert.Error(t, err)
}
