package store

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerLookup fails fast with gobreaker.ErrOpenState while the user store
// keeps erroring. A missing user is a successful call and never trips it,
// and neither does a request whose caller went away.
type BreakerLookup struct {
	Next    PhoneLookup
	Breaker *gobreaker.CircuitBreaker
}

func NewBreakerLookup(next PhoneLookup, name string) *BreakerLookup {
	return &BreakerLookup{
		Next: next,
		Breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         name,
			MaxRequests:  3,
			Timeout:      20 * time.Second,
			ReadyToTrip:  func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 5 },
			IsSuccessful: healthyResult,
		}),
	}
}

// healthyResult does not count a cancelled caller against the store.
func healthyResult(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

type lookupResult struct {
	phone string
	found bool
}

func (b *BreakerLookup) PhoneByUserID(ctx context.Context, userID int64) (string, bool, error) {
	if b.Breaker == nil {
		return b.Next.PhoneByUserID(ctx, userID)
	}
	res, err := b.Breaker.Execute(func() (interface{}, error) {
		phone, found, err := b.Next.PhoneByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return lookupResult{phone: phone, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	r := res.(lookupResult)
	return r.phone, r.found, nil
}
