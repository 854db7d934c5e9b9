package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLookup struct {
	calls  int
	phones map[int64]string
	err    error
}

func (l *countingLookup) PhoneByUserID(ctx context.Context, userID int64) (string, bool, error) {
	l.calls++
	if l.err != nil {
		return "", false, l.err
	}
	p, ok := l.phones[userID]
	return p, ok, nil
}

func newCache(t *testing.T, next *countingLookup) (*PhoneCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return &PhoneCache{Redis: rdb, Next: next, TTL: time.Minute}, mr
}

func TestPhoneCacheReadThrough(t *testing.T) {
	next := &countingLookup{phones: map[int64]string{7: "9876543210"}}
	c, mr := newCache(t, next)
	ctx := context.Background()

	phone, found, err := c.PhoneByUserID(ctx, 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9876543210", phone)

	phone, found, err = c.PhoneByUserID(ctx, 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9876543210", phone)
	assert.Equal(t, 1, next.calls)

	assert.True(t, mr.Exists("walink:phone:7"))
	assert.Equal(t, time.Minute, mr.TTL("walink:phone:7"))
}

func TestPhoneCacheDoesNotCacheMissingOrEmpty(t *testing.T) {
	next := &countingLookup{phones: map[int64]string{8: ""}}
	c, mr := newCache(t, next)
	ctx := context.Background()

	_, found, err := c.PhoneByUserID(ctx, 99)
	require.NoError(t, err)
	assert.False(t, found)

	phone, found, err := c.PhoneByUserID(ctx, 8)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, phone)

	_, _, _ = c.PhoneByUserID(ctx, 8)
	assert.Equal(t, 3, next.calls)
	assert.False(t, mr.Exists("walink:phone:8"))
	assert.False(t, mr.Exists("walink:phone:99"))
}

func TestPhoneCacheFallsBackWhenRedisDown(t *testing.T) {
	next := &countingLookup{phones: map[int64]string{7: "9876543210"}}
	c, mr := newCache(t, next)
	mr.Close()

	phone, found, err := c.PhoneByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9876543210", phone)
}

func TestPhoneCachePropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	c, _ := newCache(t, &countingLookup{err: boom})

	_, _, err := c.PhoneByUserID(context.Background(), 7)
	assert.ErrorIs(t, err, boom)
}

func TestPhoneCacheServesStaleUntilExpiry(t *testing.T) {
	next := &countingLookup{phones: map[int64]string{7: "9876543210"}}
	c, mr := newCache(t, next)
	ctx := context.Background()

	_, _, _ = c.PhoneByUserID(ctx, 7)
	next.phones[7] = "9123456789"

	phone, _, err := c.PhoneByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", phone)

	mr.FastForward(time.Minute)
	phone, _, err = c.PhoneByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "9123456789", phone)
	assert.Equal(t, 2, next.calls)
}
