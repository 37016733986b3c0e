package db

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/spacesedan/positivipy/internal/models"
)

// DynamoPutter is the slice of *dynamodb.Client the store needs.
type DynamoPutter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type DynamoStore struct {
	client      DynamoPutter
	quotesTable string
	votesTable  string
	newID       func() string
}

type quoteItem struct {
	ID    string `dynamodbav:"id"`
	Quote string `dynamodbav:"quote"`
	Date  string `dynamodbav:"date"`
}

type voteItem struct {
	ID        string `dynamodbav:"id"`
	UpOrDown  string `dynamodbav:"up_or_down"`
	Quote     string `dynamodbav:"quote"`
	Date      string `dynamodbav:"date"`
	CreatedAt int64  `dynamodbav:"created_at"`
}

func NewDynamoStore(client DynamoPutter, quotesTable, votesTable string) *DynamoStore {
	return &DynamoStore{
		client:      client,
		quotesTable: quotesTable,
		votesTable:  votesTable,
		newID:       func() string { return uuid.NewString() },
	}
}

func (s *DynamoStore) Name() string { return SinkDynamoDB }

func (s *DynamoStore) RecordQuote(ctx context.Context, rec models.QuoteRecord) error {
	return s.put(ctx, s.quotesTable, quoteItem{
		ID:    s.newID(),
		Quote: rec.Quote,
		Date:  rec.Date.UTC().Format(time.RFC3339),
	})
}

func (s *DynamoStore) RecordVote(ctx context.Context, vote models.Vote) error {
	return s.put(ctx, s.votesTable, voteItem{
		ID:        s.newID(),
		UpOrDown:  string(vote.Direction),
		Quote:     vote.Quote,
		Date:      vote.Date.UTC().Format(time.RFC3339),
		CreatedAt: vote.Date.Unix(),
	})
}

func (s *DynamoStore) put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to put item into %s: %w", table, err)
	}
	return nil
}
