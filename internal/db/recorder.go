package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/positivipy/internal/models"
	"github.com/spacesedan/positivipy/internal/monitoring"
)

const (
	defaultWriteTimeout = 5 * time.Second
	RecentUpvoteLimit   = 3
)

// Recorder fans each record out to every configured store. Failures are
// logged and counted, never returned.
type Recorder struct {
	stores  []Store
	timeout time.Duration
}

func NewRecorder(stores ...Store) *Recorder {
	return &Recorder{stores: stores, timeout: defaultWriteTimeout}
}

func (r *Recorder) Stores() []Store {
	return r.stores
}

func (r *Recorder) RecordQuote(ctx context.Context, quote string, at time.Time) {
	rec := models.QuoteRecord{Quote: quote, Date: at}
	r.each(ctx, "quote", func(ctx context.Context, s Store) error {
		return s.RecordQuote(ctx, rec)
	})
}

func (r *Recorder) RecordVote(ctx context.Context, quote string, direction models.VoteDirection, at time.Time) {
	vote := models.Vote{Quote: quote, Direction: direction, Date: at}
	r.each(ctx, "vote", func(ctx context.Context, s Store) error {
		return s.RecordVote(ctx, vote)
	})
}

// RecentUpvotes asks the first store able to list votes. Errors yield nil.
func (r *Recorder) RecentUpvotes(ctx context.Context) []string {
	for _, s := range r.stores {
		lister, ok := s.(UpvoteLister)
		if !ok {
			continue
		}
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		quotes, err := lister.RecentUpvotes(ctx, RecentUpvoteLimit)
		if err != nil {
			err = models.NewError(models.PersistenceError, "db.RecentUpvotes", err)
			slog.Warn("[Recorder] Failed to read recent upvotes",
				slog.String("sink", s.Name()),
				slog.String("error", err.Error()))
			return nil
		}
		return quotes
	}
	return nil
}

func (r *Recorder) each(ctx context.Context, kind string, write func(context.Context, Store) error) {
	// a client disconnect must not abort the writes
	ctx = context.WithoutCancel(ctx)

	for _, s := range r.stores {
		writeCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := write(writeCtx, s)
		cancel()

		if err != nil {
			monitoring.SinkWrites.WithLabelValues(s.Name(), kind, "error").Inc()
			err = models.NewError(models.PersistenceError, "db.Record", err)
			slog.Error("[Recorder] Failed to persist record",
				slog.String("sink", s.Name()),
				slog.String("kind", kind),
				slog.String("error", err.Error()))
			continue
		}
		monitoring.SinkWrites.WithLabelValues(s.Name(), kind, "ok").Inc()
	}
}
