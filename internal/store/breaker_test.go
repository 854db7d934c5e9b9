package store

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	calls int
	phone string
	found bool
	err   error
}

func (s *stubLookup) PhoneByUserID(ctx context.Context, userID int64) (string, bool, error) {
	s.calls++
	return s.phone, s.found, s.err
}

func TestBreakerLookupPassesThrough(t *testing.T) {
	next := &stubLookup{phone: "9876543210", found: true}
	b := NewBreakerLookup(next, "users")

	phone, found, err := b.PhoneByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9876543210", phone)
}

func TestBreakerLookupNotFoundDoesNotTrip(t *testing.T) {
	next := &stubLookup{}
	b := NewBreakerLookup(next, "users")

	for i := 0; i < 10; i++ {
		_, found, err := b.PhoneByUserID(context.Background(), 7)
		require.NoError(t, err)
		assert.False(t, found)
	}
	assert.Equal(t, gobreaker.StateClosed, b.Breaker.State())
}

func TestBreakerLookupOpensOnErrors(t *testing.T) {
	boom := errors.New("connection refused")
	next := &stubLookup{err: boom}
	b := NewBreakerLookup(next, "users")

	for i := 0; i < 5; i++ {
		_, _, err := b.PhoneByUserID(context.Background(), 7)
		assert.ErrorIs(t, err, boom)
	}

	_, _, err := b.PhoneByUserID(context.Background(), 7)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, next.calls)
}

func TestBreakerLookupIgnoresCancelledCallers(t *testing.T) {
	next := &ctxLookup{phone: "9876543210"}
	b := NewBreakerLookup(next, "users")

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 10; i++ {
		_, _, err := b.PhoneByUserID(cancelled, 7)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, b.Breaker.State())

	phone, found, err := b.PhoneByUserID(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9876543210", phone)
}

// ctxLookup fails the way pgx does when the request context is done.
type ctxLookup struct {
	phone string
}

func (l *ctxLookup) PhoneByUserID(ctx context.Context, userID int64) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	return l.phone, true, nil
}
