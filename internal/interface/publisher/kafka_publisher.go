package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"github.com/IBM/sarama"
)

// KafkaPublisher implements EventPublisher on a sarama sync producer.
// Messages are keyed by flight key so one flight's updates stay ordered
// within a partition.
type KafkaPublisher struct {
	topic    string
	producer sarama.SyncProducer
}

// NewKafkaPublisher creates a new Kafka update-event publisher
func NewKafkaPublisher(brokers []string, topic string) (repository.EventPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 500 * time.Millisecond

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create sarama sync producer: %w", err)
	}

	return &KafkaPublisher{
		topic:    topic,
		producer: producer,
	}, nil
}

// Publish sends one update event to the bus, at-least-once.
func (p *KafkaPublisher) Publish(ctx context.Context, event *entity.UpdateEvent) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}

	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal update event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.FlightKey),
		Value:     sarama.ByteEncoder(b),
		Timestamp: event.OccurredAt,
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send kafka message: %w", err)
	}

	return nil
}

// Close shuts the underlying producer down.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
