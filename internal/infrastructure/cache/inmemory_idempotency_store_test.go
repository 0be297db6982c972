package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("marks new key as processed", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "callback-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("returns false for already processed key", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "callback-2", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "callback-2", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew)
	})

	t.Run("allows reprocessing after expiration", func(t *testing.T) {
		isNew, err := store.MarkProcessed(ctx, "callback-3", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, isNew)

		time.Sleep(20 * time.Millisecond)

		isNew, err = store.MarkProcessed(ctx, "callback-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "callback-1", time.Hour)
	require.NoError(t, err)

	processed, err = store.IsProcessed(ctx, "callback-1")
	require.NoError(t, err)
	assert.True(t, processed)

	_, err = store.MarkProcessed(ctx, "callback-2", 10*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	processed, err = store.IsProcessed(ctx, "callback-2")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "short", 10*time.Millisecond)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "long", time.Hour)
	require.NoError(t, err)
	require.Equal(t, 2, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
