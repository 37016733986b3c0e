package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/positivipy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	messages []*kafka.Message
	err      error
}

func (f *fakeProducer) Produce(msg *kafka.Message, _ chan kafka.Event) error {
	f.messages = append(f.messages, msg)
	return f.err
}

func TestEventStore_RecordVote(t *testing.T) {
	producer := &fakeProducer{}
	store := NewEventStore(producer, "positivipy.events")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordVote(context.Background(), models.Vote{Quote: "Be kind.", Direction: models.VoteUp, Date: at}))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "positivipy.events", *msg.TopicPartition.Topic)
	assert.Equal(t, []byte("Be kind."), msg.Key)

	var event models.Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, models.EventVoteCast, event.Type)
	assert.Equal(t, models.VoteUp, event.Direction)
	assert.NotEmpty(t, event.ID)
	assert.True(t, at.Equal(event.Date))
}

func TestEventStore_Errors(t *testing.T) {
	store := NewEventStore(&fakeProducer{err: errors.New("queue full")}, "t")
	err := store.RecordQuote(context.Background(), models.QuoteRecord{Quote: "x", Date: time.Now()})
	assert.ErrorContains(t, err, "queue full")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	producer := &fakeProducer{}
	err = NewEventStore(producer, "t").RecordQuote(ctx, models.QuoteRecord{Quote: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, producer.messages)
}
