package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// AdvisoryLocker serializes check-and-write booking commits per
// (resource, date) using Redis SET NX with a TTL. It narrows the window
// between the final conflict re-check and the segment insert; the mongo
// transaction underneath is the real consistency guarantee.
type AdvisoryLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAdvisoryLocker creates a locker with the given lease TTL.
func NewAdvisoryLocker(client *redis.Client, ttl time.Duration) *AdvisoryLocker {
	return &AdvisoryLocker{client: client, ttl: ttl}
}

// BookingLockKey builds the lock key for a resource/date pair.
func BookingLockKey(resourceID string, day time.Time) string {
	return fmt.Sprintf("booking-lock:%s:%s", resourceID, day.Format("2006-01-02"))
}

// Acquire takes the lock, returning a release func. ok is false when another
// flow currently holds it.
func (l *AdvisoryLocker) Acquire(ctx context.Context, key string) (release func(), ok bool, err error) {
	token := uuid.New().String()
	ok, err = l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire advisory lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	release = func() {
		// Only delete our own lease; an expired lease may have been re-taken.
		current, getErr := l.client.Get(context.Background(), key).Result()
		if getErr == nil && current == token {
			l.client.Del(context.Background(), key)
		}
	}
	return release, true, nil
}
