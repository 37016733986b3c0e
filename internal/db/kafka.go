package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
	"github.com/spacesedan/positivipy/internal/models"
)

// Producer is the slice of *kafka.Producer the event store needs.
type Producer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
}

// EventStore publishes every quote and vote as a JSON event keyed by quote.
type EventStore struct {
	producer Producer
	topic    string
}

func NewEventStore(producer Producer, topic string) *EventStore {
	return &EventStore{producer: producer, topic: topic}
}

func (s *EventStore) Name() string { return SinkKafka }

func (s *EventStore) RecordQuote(ctx context.Context, rec models.QuoteRecord) error {
	return s.publish(ctx, models.Event{
		ID:    uuid.NewString(),
		Type:  models.EventQuoteGenerated,
		Quote: rec.Quote,
		Date:  rec.Date,
	})
}

func (s *EventStore) RecordVote(ctx context.Context, vote models.Vote) error {
	return s.publish(ctx, models.Event{
		ID:        uuid.NewString(),
		Type:      models.EventVoteCast,
		Quote:     vote.Quote,
		Direction: vote.Direction,
		Date:      vote.Date,
	})
}

func (s *EventStore) publish(ctx context.Context, event models.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("[Kafka] Failed to serialize event: %w", err)
	}

	err = s.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &s.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.Quote),
		Value:          payload,
		Headers:        []kafka.Header{{Key: "event_type", Value: []byte(event.Type)}},
	}, nil)
	if err != nil {
		return fmt.Errorf("[Kafka] Failed to produce %s event: %w", event.Type, err)
	}
	return nil
}
