package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alimikegami/bulknest-server/internal/dto"
	circuitbreaker "github.com/alimikegami/bulknest-server/internal/infrastructure/circuit-breaker"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	failures int
	calls    int
	messages []kafka.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.calls++
	if w.calls <= w.failures {
		return errors.New("broker unavailable")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestPublisher_Publish(t *testing.T) {
	type TestCase struct {
		Name          string
		Failures      int
		ExpectedCalls int
		ExpectError   bool
	}

	testCases := []TestCase{
		{Name: "First attempt succeeds", Failures: 0, ExpectedCalls: 1},
		{Name: "Succeeds after retry", Failures: 1, ExpectedCalls: 2},
		{Name: "Gives up after three attempts", Failures: 10, ExpectedCalls: 3, ExpectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			w := &fakeWriter{failures: tc.Failures}
			cb := circuitbreaker.CreateCircuitBreaker(tc.Name, time.Minute)
			p := CreateKafkaPublisher(w, cb, time.Millisecond)

			err := p.Publish(context.Background(), dto.EventOrderPlaced, "order-1", dto.OrderEvent{OrderID: "order-1", Quantity: 3})

			assert.Equal(t, tc.ExpectedCalls, w.calls)
			if tc.ExpectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, w.messages, 1)
			assert.Equal(t, "order-1", string(w.messages[0].Key))

			var msg struct {
				EventType string         `json:"event_type"`
				Data      dto.OrderEvent `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.messages[0].Value, &msg))
			assert.Equal(t, dto.EventOrderPlaced, msg.EventType)
			assert.Equal(t, int64(3), msg.Data.Quantity)
		})
	}
}

func TestPublisher_OpenBreakerStopsRetries(t *testing.T) {
	w := &fakeWriter{failures: 100}
	cb := circuitbreaker.CreateCircuitBreaker("publisher-test", time.Minute)
	p := CreateKafkaPublisher(w, cb, time.Millisecond)

	// three failed attempts trip the breaker
	assert.Error(t, p.Publish(context.Background(), dto.EventOrderDeleted, "k", nil))
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	calls := w.calls
	err := p.Publish(context.Background(), dto.EventOrderDeleted, "k", nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, calls, w.calls)
}

func TestPublisher_CancelledContextStopsBackoff(t *testing.T) {
	w := &fakeWriter{failures: 100}
	cb := circuitbreaker.CreateCircuitBreaker("publisher-cancel-test", time.Minute)
	p := CreateKafkaPublisher(w, cb, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.Publish(ctx, dto.EventOrderPlaced, "order-1", nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, w.calls)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLogPublisher(t *testing.T) {
	p := CreateLogPublisher()
	assert.NoError(t, p.Publish(context.Background(), dto.EventUserCreated, "u@x.com", dto.UserEvent{Email: "u@x.com"}))
	assert.NoError(t, p.Close())
}
