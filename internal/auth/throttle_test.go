package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const throttleWindow = 15 * time.Minute

func newTestThrottle(t *testing.T, maxFailures int) (*RedisThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisThrottle(client, maxFailures, throttleWindow), mr
}

func TestRedisThrottleUnknownKeyIsNotBlocked(t *testing.T) {
	throttle, _ := newTestThrottle(t, 3)
	blocked, err := throttle.Blocked(context.Background(), "admin")
	if err != nil || blocked {
		t.Fatalf("missing counter should not block: blocked=%v err=%v", blocked, err)
	}
}

func TestRedisThrottleFirstFailureStartsWindow(t *testing.T) {
	throttle, mr := newTestThrottle(t, 3)
	ctx := context.Background()
	key := "login:failures:admin"

	if err := throttle.RecordFailure(ctx, "admin"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if got := mr.TTL(key); got != throttleWindow {
		t.Fatalf("first failure should set ttl %s, got %s", throttleWindow, got)
	}

	mr.FastForward(time.Minute)
	if err := throttle.RecordFailure(ctx, "admin"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if got := mr.TTL(key); got != throttleWindow-time.Minute {
		t.Fatalf("later failures must not extend the window, ttl %s", got)
	}
	if got, _ := mr.Get(key); got != "2" {
		t.Fatalf("counter = %q, want 2", got)
	}
}

func TestRedisThrottleBlocksAtLimit(t *testing.T) {
	throttle, _ := newTestThrottle(t, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		blocked, err := throttle.Blocked(ctx, "admin")
		if err != nil || blocked {
			t.Fatalf("blocked before failure %d: %v %v", i, blocked, err)
		}
		if err := throttle.RecordFailure(ctx, "admin"); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}

	blocked, err := throttle.Blocked(ctx, "admin")
	if err != nil || !blocked {
		t.Fatalf("counter equal to the limit should block: blocked=%v err=%v", blocked, err)
	}
	if blocked, _ := throttle.Blocked(ctx, "clerk"); blocked {
		t.Fatal("counters are per username")
	}
}

func TestRedisThrottleWindowExpires(t *testing.T) {
	throttle, mr := newTestThrottle(t, 1)
	ctx := context.Background()

	if err := throttle.RecordFailure(ctx, "admin"); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if blocked, _ := throttle.Blocked(ctx, "admin"); !blocked {
		t.Fatal("expected block inside the window")
	}

	mr.FastForward(throttleWindow)
	if blocked, err := throttle.Blocked(ctx, "admin"); err != nil || blocked {
		t.Fatalf("expired window should unblock: blocked=%v err=%v", blocked, err)
	}
}

func TestRedisThrottleResetClearsCounter(t *testing.T) {
	throttle, mr := newTestThrottle(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := throttle.RecordFailure(ctx, "admin"); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}
	if err := throttle.Reset(ctx, "admin"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if mr.Exists("login:failures:admin") {
		t.Fatal("reset should delete the counter")
	}
	if blocked, _ := throttle.Blocked(ctx, "admin"); blocked {
		t.Fatal("reset user must not be blocked")
	}
}

func TestRedisThrottleReportsStoreErrors(t *testing.T) {
	throttle, mr := newTestThrottle(t, 3)
	ctx := context.Background()

	if err := mr.Set("login:failures:admin", "not-a-number"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if blocked, err := throttle.Blocked(ctx, "admin"); err == nil || blocked {
		t.Fatalf("corrupt counter should error without blocking: blocked=%v err=%v", blocked, err)
	}

	mr.Close()
	if blocked, err := throttle.Blocked(ctx, "clerk"); err == nil || blocked {
		t.Fatalf("unreachable redis should error without blocking: blocked=%v err=%v", blocked, err)
	}
	if err := throttle.RecordFailure(ctx, "clerk"); err == nil {
		t.Fatal("expected RecordFailure error when redis is down")
	}
}
