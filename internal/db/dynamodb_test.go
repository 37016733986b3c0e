package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/positivipy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*dynamodb.PutItemInput
	err    error
}

func (f *fakePutter) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.inputs = append(f.inputs, in)
	return &dynamodb.PutItemOutput{}, f.err
}

func itemString(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func TestDynamoStore_Records(t *testing.T) {
	putter := &fakePutter{}
	store := NewDynamoStore(putter, "Quotes", "Votes")
	store.newID = func() string { return "id-1" }
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordQuote(context.Background(), models.QuoteRecord{Quote: "Be kind.", Date: at}))
	require.NoError(t, store.RecordVote(context.Background(), models.Vote{Quote: "Be kind.", Direction: models.VoteUp, Date: at}))

	require.Len(t, putter.inputs, 2)

	quote := putter.inputs[0]
	assert.Equal(t, "Quotes", aws.ToString(quote.TableName))
	assert.Equal(t, "id-1", itemString(quote.Item, "id"))
	assert.Equal(t, "Be kind.", itemString(quote.Item, "quote"))
	assert.Equal(t, "2024-05-01T12:00:00Z", itemString(quote.Item, "date"))

	vote := putter.inputs[1]
	assert.Equal(t, "Votes", aws.ToString(vote.TableName))
	assert.Equal(t, "up", itemString(vote.Item, "up_or_down"))
	created, ok := vote.Item["created_at"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "1714564800", created.Value)
}

func TestDynamoStore_PutError(t *testing.T) {
	store := NewDynamoStore(&fakePutter{err: errors.New("throttled")}, "Quotes", "Votes")
	err := store.RecordQuote(context.Background(), models.QuoteRecord{Quote: "x", Date: time.Now()})
	assert.ErrorContains(t, err, "throttled")
}
