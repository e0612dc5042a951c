package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"vitaran/internal/platform/kafka/producer"
)

// messageProducer is the slice of the Kafka producer the sink needs.
type messageProducer interface {
	ProduceAsync(msg *producer.Message) error
}

// KafkaStore publishes audit events to a Kafka topic. Events are keyed by
// citizen ID so all activity for one citizen lands on the same partition.
type KafkaStore struct {
	producer messageProducer
	topic    string
}

func NewKafkaStore(p messageProducer, topic string) *KafkaStore {
	return &KafkaStore{producer: p, topic: topic}
}

// Append serializes the event and hands it to the producer. Delivery is
// asynchronous: audit publishing must never block adjudication.
func (s *KafkaStore) Append(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	msg := &producer.Message{
		Topic: s.topic,
		Value: payload,
		Headers: map[string]string{
			"action": string(event.Action),
		},
	}
	if event.CitizenID != "" {
		msg.Key = []byte(event.CitizenID)
	}

	if err := s.producer.ProduceAsync(msg); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}
