package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spacesedan/positivipy/internal/models"
	"github.com/stretchr/testify/assert"
)

type memStore struct {
	name    string
	err     error
	quotes  []models.QuoteRecord
	votes   []models.Vote
	upvotes []string
}

func (m *memStore) Name() string { return m.name }

func (m *memStore) RecordQuote(_ context.Context, rec models.QuoteRecord) error {
	if m.err != nil {
		return m.err
	}
	m.quotes = append(m.quotes, rec)
	return nil
}

func (m *memStore) RecordVote(_ context.Context, vote models.Vote) error {
	if m.err != nil {
		return m.err
	}
	m.votes = append(m.votes, vote)
	return nil
}

type listingStore struct {
	memStore
}

func (l *listingStore) RecentUpvotes(_ context.Context, limit int) ([]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	if len(l.upvotes) > limit {
		return l.upvotes[:limit], nil
	}
	return l.upvotes, nil
}

func TestRecorder_FailingStoreDoesNotStopOthers(t *testing.T) {
	broken := &memStore{name: "broken", err: errors.New("down")}
	healthy := &memStore{name: "healthy"}
	r := NewRecorder(broken, healthy)
	at := time.Now()

	assert.NotPanics(t, func() {
		r.RecordQuote(context.Background(), "Be kind.", at)
		r.RecordVote(context.Background(), "Be kind.", models.VoteUp, at)
	})

	assert.Equal(t, []models.QuoteRecord{{Quote: "Be kind.", Date: at}}, healthy.quotes)
	assert.Equal(t, []models.Vote{{Quote: "Be kind.", Direction: models.VoteUp, Date: at}}, healthy.votes)
}

func TestRecorder_CancelledRequestStillWrites(t *testing.T) {
	store := &memStore{name: "mem"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewRecorder(store).RecordQuote(ctx, "Be kind.", time.Now())
	assert.Len(t, store.quotes, 1)
}

func TestRecorder_RecentUpvotes(t *testing.T) {
	assert.Nil(t, NewRecorder(&memStore{name: "mem"}).RecentUpvotes(context.Background()))

	lister := &listingStore{memStore{name: "pg", upvotes: []string{"a", "b", "c", "d"}}}
	got := NewRecorder(&memStore{name: "mem"}, lister).RecentUpvotes(context.Background())
	assert.Equal(t, []string{"a", "b", "c"}, got)

	failing := &listingStore{memStore{name: "pg", err: errors.New("down")}}
	assert.Nil(t, NewRecorder(failing).RecentUpvotes(context.Background()))
}
