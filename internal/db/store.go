// Package db holds the persistence sinks quotes and votes are written to.
package db

import (
	"context"

	"github.com/spacesedan/positivipy/internal/models"
)

const (
	SinkPostgres = "postgres"
	SinkDynamoDB = "dynamodb"
	SinkKafka    = "kafka"
)

// Store is one persistence backend. Writes are independent and carry no
// idempotency key.
type Store interface {
	Name() string
	RecordQuote(ctx context.Context, rec models.QuoteRecord) error
	RecordVote(ctx context.Context, vote models.Vote) error
}

// UpvoteLister is implemented by stores that can read votes back.
type UpvoteLister interface {
	RecentUpvotes(ctx context.Context, limit int) ([]string, error)
}
