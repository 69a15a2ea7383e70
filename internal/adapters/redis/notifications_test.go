package redisad_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "park_palace/internal/adapters/redis"
	"park_palace/internal/domain"
)

func newStore(t *testing.T) (*redisad.NotificationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.New(mr.Addr(), "", 0), mr
}

func note(id string, at time.Time) domain.Notification {
	return domain.Notification{ID: id, Kind: domain.NotifySuccess, Title: "Booking Confirmed!", Lines: []string{"Booking ID: 1"}, CreatedAt: at}
}

func TestNotificationStore_PutListOrder(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(ctx, "s1", note("b", base.Add(time.Second)), 5*time.Second))
	require.NoError(t, store.Put(ctx, "s1", note("a", base), 5*time.Second))
	require.NoError(t, store.Put(ctx, "s2", note("c", base), 5*time.Second))

	got, err := store.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, []string{"Booking ID: 1"}, got[0].Lines)
}

func TestNotificationStore_ExpiresAfterTTL(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", note("a", time.Now()), 5*time.Second))

	mr.FastForward(4 * time.Second)
	got, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	mr.FastForward(time.Second)
	got, err = store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNotificationStore_Del(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", note("a", time.Now()), 5*time.Second))

	removed, err := store.Del(ctx, "s1", "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Del(ctx, "s1", "a")
	require.NoError(t, err)
	assert.False(t, removed)

	got, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNotificationStore_RedisErrors(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := redisad.NewWithClient(db)
	ctx := context.Background()

	mock.ExpectDel("notify:s1:a").SetErr(errors.New("connection refused"))
	_, err := store.Del(ctx, "s1", "a")
	assert.Error(t, err)

	mock.ExpectScan(0, "notify:s1:*", 100).SetErr(errors.New("connection refused"))
	_, err = store.List(ctx, "s1")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
