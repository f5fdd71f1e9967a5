package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/karacoop/credit-service/internal/domain/event"
	"github.com/karacoop/credit-service/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing domain
// events to a single Kafka topic, keyed by aggregate id so events of one
// contract stay ordered within a partition.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher over the given producer.
func NewKafkaEventPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    producer.Topic(),
		logger:   logger,
	}
}

// Publish serialises and sends domain events.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
			},
		})
	}

	if err := p.producer.Publish(ctx, messages...); err != nil {
		return fmt.Errorf("publish %d events: %w", len(messages), err)
	}

	for _, evt := range events {
		p.logger.Info("published domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
		)
	}
	return nil
}
