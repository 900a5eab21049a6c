package lock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestLocalLocker_Exclusive(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlock, err := l.TryLock(ctx, "product:1", time.Second)
	if err != nil {
		t.Fatalf("first TryLock: %v", err)
	}
	if _, err := l.TryLock(ctx, "product:1", time.Second); !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("second TryLock err = %v, want ErrNotAcquired", err)
	}
	if _, err := l.TryLock(ctx, "product:2", time.Second); err != nil {
		t.Errorf("other key TryLock: %v", err)
	}

	unlock()
	unlock() // idempotent
	if _, err := l.TryLock(ctx, "product:1", time.Second); err != nil {
		t.Errorf("TryLock after unlock: %v", err)
	}
}

func TestAcquire_GivesUpAfterAttempts(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()
	hold, _ := l.TryLock(ctx, "k", 0)
	defer hold()

	start := time.Now()
	_, err := Acquire(ctx, l, "k", 0, 3, 5*time.Millisecond)
	if !errors.Is(err, ErrNotAcquired) {
		t.Fatalf("Acquire err = %v, want ErrNotAcquired", err)
	}
	// 5ms + 10ms of backoff, bounded
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Acquire took %v, want bounded wait", elapsed)
	}
}

func TestAcquire_SucceedsOnceReleased(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()
	hold, _ := l.TryLock(ctx, "k", 0)
	go func() {
		time.Sleep(5 * time.Millisecond)
		hold()
	}()

	unlock, err := Acquire(ctx, l, "k", 0, 6, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	unlock()
}

func TestAcquire_ContextCancelled(t *testing.T) {
	l := NewLocalLocker()
	hold, _ := l.TryLock(context.Background(), "k", 0)
	defer hold()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Acquire(ctx, l, "k", 0, 3, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire err = %v, want context.Canceled", err)
	}
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis lock test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	l := NewRedisLocker(client, "test:lock:")
	ctx := context.Background()
	unlock, err := l.TryLock(ctx, "variation:5", time.Second)
	if err != nil {
		t.Fatalf("TryLock: %v", err)
	}
	if _, err := l.TryLock(ctx, "variation:5", time.Second); !errors.Is(err, ErrNotAcquired) {
		t.Errorf("second TryLock err = %v, want ErrNotAcquired", err)
	}
	unlock()
	again, err := l.TryLock(ctx, "variation:5", time.Second)
	if err != nil {
		t.Fatalf("TryLock after unlock: %v", err)
	}
	again()
}
