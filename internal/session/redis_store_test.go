package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, s
}

func TestRedisStoreSaveAndGet(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	sess := Session{
		ID:       "s1",
		UserID:   "u1",
		Role:     "admin",
		Name:     "John Adeniji",
		LastSeen: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "admin", got.Role)
	assert.True(t, got.LastSeen.Equal(sess.LastSeen))
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreTouch(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, Session{ID: "s1", UserID: "u1", LastSeen: t0}))

	t1 := t0.Add(90 * time.Second)
	require.NoError(t, store.Touch(ctx, "s1", t1))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.LastSeen.Equal(t1))

	assert.ErrorIs(t, store.Touch(ctx, "missing", t1), ErrNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "s1", UserID: "u1"}))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an absent session is not an error
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestRedisStoreRecordExpiry(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: "s1", UserID: "u1"}))

	mr.FastForward(sessionTTL + time.Minute)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}
