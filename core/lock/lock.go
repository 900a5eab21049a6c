// Package lock provides short-lived, item-scoped mutual exclusion for ledger
// mutations. A Redis-backed locker coordinates several processes; the local
// locker covers single-process deployments and tests.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the key is held by someone else.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker acquires a named lock without blocking.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// Acquire calls TryLock up to attempts times, sleeping backoff, 2*backoff, ...
// between tries. It never waits longer than the sum of those steps.
func Acquire(ctx context.Context, l Locker, key string, ttl time.Duration, attempts int, backoff time.Duration) (func(), error) {
	if attempts < 1 {
		attempts = 1
	}
	wait := backoff
	for i := 0; i < attempts; i++ {
		unlock, err := l.TryLock(ctx, key, ttl)
		if err == nil {
			return unlock, nil
		}
		if !errors.Is(err, ErrNotAcquired) {
			return nil, err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return nil, ErrNotAcquired
}
