package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spacesedan/positivipy/internal/models"
)

const (
	insertQuoteSQL = `INSERT INTO quotes (quote, date) VALUES ($1, $2)`
	insertVoteSQL  = `INSERT INTO votes (up_or_down, quote, date) VALUES ($1, $2, $3)`
	recentUpvotes  = `
        SELECT quote FROM votes WHERE up_or_down = 'up' ORDER BY date DESC LIMIT $1
    `
)

// PgxIface is satisfied by *pgxpool.Pool and pgxmock pools.
type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresStore struct {
	DB PgxIface
}

func NewPostgresStore(pool PgxIface) *PostgresStore {
	return &PostgresStore{DB: pool}
}

func (s *PostgresStore) Name() string { return SinkPostgres }

func (s *PostgresStore) RecordQuote(ctx context.Context, rec models.QuoteRecord) error {
	if _, err := s.DB.Exec(ctx, insertQuoteSQL, rec.Quote, rec.Date); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecordVote(ctx context.Context, vote models.Vote) error {
	if _, err := s.DB.Exec(ctx, insertVoteSQL, string(vote.Direction), vote.Quote, vote.Date); err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// RecentUpvotes returns the latest up-voted quotes, newest first.
func (s *PostgresStore) RecentUpvotes(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.DB.Query(ctx, recentUpvotes, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upvotes: %w", err)
	}
	defer rows.Close()

	var quotes []string
	for rows.Next() {
		var quote string
		if err := rows.Scan(&quote); err != nil {
			return nil, err
		}
		quotes = append(quotes, quote)
	}
	return quotes, rows.Err()
}
