// Package consumers replays the Kafka event stream into durable stores.
package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/positivipy/internal/db"
	"github.com/spacesedan/positivipy/internal/models"
	"github.com/spacesedan/positivipy/internal/utils"
)

const (
	POLL_TIMEOUT = 500 * time.Millisecond
	MAX_RETRIES  = 3
	RETRY_DELAY  = time.Second
)

// MessageSource is the slice of *kafka.Consumer the replay loop needs.
type MessageSource interface {
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	CommitMessage(m *kafka.Message) ([]kafka.TopicPartition, error)
}

type EventConsumer struct {
	source       MessageSource
	stores       []db.Store
	buffer       *utils.BatchBuffer[*kafka.Message]
	batchTimeout time.Duration
	retryDelay   time.Duration
}

func NewEventConsumer(source MessageSource, stores []db.Store) *EventConsumer {
	return &EventConsumer{
		source:       source,
		stores:       stores,
		buffer:       utils.NewBatchBuffer[*kafka.Message](utils.BATCH_SIZE),
		batchTimeout: utils.BATCH_TIMEOUT,
		retryDelay:   RETRY_DELAY,
	}
}

// Run reads events until ctx is cancelled, writing them to every store in
// batches and committing offsets once a batch is written.
func (c *EventConsumer) Run(ctx context.Context) {
	ticker := time.NewTicker(c.batchTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.flush(context.WithoutCancel(ctx))
			return
		case <-ticker.C:
			c.flush(ctx)
		default:
			msg, err := c.source.ReadMessage(POLL_TIMEOUT)
			if err != nil {
				var kafkaErr kafka.Error
				if errors.As(err, &kafkaErr) {
					switch kafkaErr.Code() {
					case kafka.ErrTimedOut:
						continue
					case kafka.ErrAllBrokersDown:
						slog.Error("[EventConsumer] All Kafka brokers are down")
						time.Sleep(c.retryDelay)
						continue
					}
				}
				slog.Error("[EventConsumer] Kafka Consumer Error", slog.String("error", err.Error()))
				continue
			}
			if c.buffer.Add(msg) {
				c.flush(ctx)
			}
		}
	}
}

func (c *EventConsumer) flush(ctx context.Context) {
	batch := c.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}
	utils.LogBatchProcessing("events", len(batch))

	latest := make(map[int32]*kafka.Message)
	for _, msg := range batch {
		c.apply(ctx, msg)

		p := msg.TopicPartition.Partition
		if prev, ok := latest[p]; !ok || msg.TopicPartition.Offset > prev.TopicPartition.Offset {
			latest[p] = msg
		}
	}

	for _, msg := range latest {
		if err := c.commit(ctx, msg); err != nil {
			slog.Warn("[EventConsumer] Failed to commit offset", slog.String("error", err.Error()))
		}
	}
}

func (c *EventConsumer) apply(ctx context.Context, msg *kafka.Message) {
	var event models.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		slog.Warn("[EventConsumer] Failed to deserialize message, skipping...",
			slog.String("error", err.Error()))
		return
	}

	var write func(context.Context, db.Store) error
	switch event.Type {
	case models.EventQuoteGenerated:
		rec := models.QuoteRecord{Quote: event.Quote, Date: event.Date}
		write = func(ctx context.Context, s db.Store) error { return s.RecordQuote(ctx, rec) }
	case models.EventVoteCast:
		direction, err := models.ParseVoteDirection(string(event.Direction))
		if err != nil {
			slog.Warn("[EventConsumer] Skipping vote event", slog.String("error", err.Error()))
			return
		}
		vote := models.Vote{Quote: event.Quote, Direction: direction, Date: event.Date}
		write = func(ctx context.Context, s db.Store) error { return s.RecordVote(ctx, vote) }
	default:
		slog.Warn("[EventConsumer] Unknown event type, skipping...", slog.String("type", event.Type))
		return
	}

	for _, s := range c.stores {
		var err error
		for i := 0; i < MAX_RETRIES; i++ {
			if err = write(ctx, s); err == nil {
				break
			}
			slog.Error("[EventConsumer] Failed to write event",
				slog.String("sink", s.Name()),
				slog.String("error", err.Error()),
				slog.Int("attempt", i+1))
		}
		if err != nil {
			err = models.NewError(models.PersistenceError, "consumers.apply", err)
			slog.Error("[EventConsumer] Dropping event for sink",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()))
		}
	}
}

func (c *EventConsumer) commit(ctx context.Context, msg *kafka.Message) error {
	for i := 0; i < MAX_RETRIES; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := c.source.CommitMessage(msg)
		if err == nil {
			slog.Debug("[EventConsumer] Committed offset",
				slog.Int("partition", int(msg.TopicPartition.Partition)),
				slog.String("offset", msg.TopicPartition.Offset.String()))
			return nil
		}
		slog.Warn("[EventConsumer] Failed to commit offset, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(c.retryDelay)
	}
	return fmt.Errorf("failed to commit message after %d retries", MAX_RETRIES)
}
