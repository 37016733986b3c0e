package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
)

func TestValkeyClient_Get(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	vc := &ValkeyClient{Client: client}

	t.Run("hit", func(t *testing.T) {
		client.EXPECT().
			Do(ctx, mock.Match("GET", "corpus:key")).
			Return(mock.Result(mock.ValkeyString("Quotes,Authors")))

		b, ok, err := vc.Get(ctx, "corpus:key")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Quotes,Authors", string(b))
	})

	t.Run("miss", func(t *testing.T) {
		client.EXPECT().
			Do(ctx, mock.Match("GET", "corpus:missing")).
			Return(mock.Result(mock.ValkeyNil()))

		b, ok, err := vc.Get(ctx, "corpus:missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, b)
	})

	t.Run("error", func(t *testing.T) {
		client.EXPECT().
			Do(ctx, mock.Match("GET", "corpus:broken")).
			Return(mock.ErrorResult(errors.New("WRONGTYPE")))

		_, ok, err := vc.Get(ctx, "corpus:broken")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestValkeyClient_Set(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	vc := &ValkeyClient{Client: client}

	client.EXPECT().
		Do(ctx, mock.Match("SET", "corpus:key", "payload", "EX", "60")).
		Return(mock.Result(mock.ValkeyString("OK")))

	require.NoError(t, vc.Set(ctx, "corpus:key", []byte("payload"), time.Minute))
}

func TestValkeyClient_SetRoundsSubSecondTTL(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	vc := &ValkeyClient{Client: client}

	client.EXPECT().
		Do(ctx, mock.Match("SET", "corpus:key", "payload", "EX", "1")).
		Return(mock.Result(mock.ValkeyString("OK")))

	require.NoError(t, vc.Set(ctx, "corpus:key", []byte("payload"), 300*time.Millisecond))
}

func TestExpirySeconds(t *testing.T) {
	assert.Equal(t, int64(1), expirySeconds(time.Millisecond))
	assert.Equal(t, int64(2), expirySeconds(1500*time.Millisecond))
	assert.Equal(t, int64(60), expirySeconds(time.Minute))
}

func TestIsConnectionError(t *testing.T) {
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE")))
	assert.False(t, isConnectionError(nil))
}
