package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/bulknest-server/config"
	"github.com/alimikegami/bulknest-server/internal/dto"
	"github.com/alimikegami/bulknest-server/internal/infrastructure/metrics"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const maxRetries = 3

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:                  config.KafkaConfig.BrokerTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

type Publisher struct {
	writer     MessageWriter
	cb         *gobreaker.CircuitBreaker[any]
	retryDelay time.Duration
}

func CreateKafkaPublisher(writer MessageWriter, cb *gobreaker.CircuitBreaker[any], retryDelay time.Duration) *Publisher {
	return &Publisher{
		writer:     writer,
		cb:         cb,
		retryDelay: retryDelay,
	}
}

// Publish writes one event keyed by key. Attempts go through the circuit
// breaker; an open breaker ends the retries early.
func (p *Publisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	jsonMsg, err := json.Marshal(dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonMsg,
	}

	for i := 0; i < maxRetries; i++ {
		_, err = p.cb.Execute(func() (any, error) {
			return nil, p.writer.WriteMessages(ctx, msg)
		})
		if err == nil {
			metrics.EventsPublished.WithLabelValues(eventType, "ok").Inc()
			return nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", eventType).Int("attempt", i+1).Msg("")

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
				return fmt.Errorf("gave up writing Kafka message after %d attempts: %w", i+1, ctx.Err())
			case <-time.After(p.retryDelay * time.Duration(i+1)):
			}
		}
	}

	metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxRetries, err)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for the broker when none is configured.
type LogPublisher struct{}

func CreateLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	log.Ctx(ctx).Debug().Str("event_type", eventType).Str("key", key).Interface("data", data).Msg("Event not published, no broker configured")
	metrics.EventsPublished.WithLabelValues(eventType, "skipped").Inc()
	return nil
}

func (LogPublisher) Close() error {
	return nil
}
