// Package cache fronts the user phone lookup with redis.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"walink/internal/observability"
	"walink/internal/store"
)

const DefaultTTL = 10 * time.Minute

// PhoneCache is a read-through cache. Only non-empty phones are cached, so
// a user who adds a phone later is picked up on the next request. A changed
// phone is not: links keep going to the old number until the entry expires,
// so TTL bounds how stale a lookup can be. Redis failures fall back to the
// wrapped lookup.
type PhoneCache struct {
	Redis  *redis.Client
	Next   store.PhoneLookup
	TTL    time.Duration
	Prefix string
}

func (c *PhoneCache) PhoneByUserID(ctx context.Context, userID int64) (string, bool, error) {
	key := c.key(userID)

	phone, err := c.Redis.Get(ctx, key).Result()
	switch {
	case err == nil && phone != "":
		observability.PhoneCache.WithLabelValues("hit").Inc()
		return phone, true, nil
	case err != nil && !errors.Is(err, redis.Nil):
		observability.PhoneCache.WithLabelValues("error").Inc()
		slog.Warn("phone cache get failed", "err", err, "user_id", userID)
	default:
		observability.PhoneCache.WithLabelValues("miss").Inc()
	}

	phone, found, err := c.Next.PhoneByUserID(ctx, userID)
	if err != nil || !found {
		return "", false, err
	}

	if phone != "" {
		if err := c.Redis.Set(ctx, key, phone, c.ttl()).Err(); err != nil {
			slog.Warn("phone cache set failed", "err", err, "user_id", userID)
		}
	}
	return phone, true, nil
}

func (c *PhoneCache) key(userID int64) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = "walink:phone:"
	}
	return prefix + strconv.FormatInt(userID, 10)
}

func (c *PhoneCache) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}
