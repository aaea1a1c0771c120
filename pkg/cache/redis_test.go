package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) *Client {
	mr := miniredis.RunT(t)

	client, err := NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

func TestNewClient(t *testing.T) {
	t.Run("Failure - Bad URL", func(t *testing.T) {
		_, err := NewClient("not-a-url")
		assert.Error(t, err)
	})
}

func TestSetGet(t *testing.T) {
	client := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "feeds:last:alerts", `[{"id":"1"}]`, time.Hour))

	got, err := client.Get(ctx, "feeds:last:alerts")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)

	_, err = client.Get(ctx, "missing")
	assert.Error(t, err)
}

func TestDeleteExists(t *testing.T) {
	client := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "v", time.Hour))

	exists, err := client.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, client.Delete(ctx, "k"))

	exists, err = client.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}
