package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.allow("1.2.3.4")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	rl.allow("1.2.3.4")
	rl.allow("1.2.3.4")

	allowed, retryAfter := rl.allow("1.2.3.4")
	if allowed {
		t.Fatal("third request should be blocked")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retryAfter = %v, want within (0, 1m]", retryAfter)
	}
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)

	if allowed, _ := rl.allow("1.1.1.1"); !allowed {
		t.Fatal("first client should be allowed")
	}
	if allowed, _ := rl.allow("2.2.2.2"); !allowed {
		t.Fatal("second client should not share the first client's limit")
	}
	if allowed, _ := rl.allow("1.1.1.1"); allowed {
		t.Fatal("first client should now be blocked")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1, 10*time.Millisecond)

	rl.allow("1.2.3.4")
	if allowed, _ := rl.allow("1.2.3.4"); allowed {
		t.Fatal("second request inside the window should be blocked")
	}

	time.Sleep(15 * time.Millisecond)
	if allowed, _ := rl.allow("1.2.3.4"); !allowed {
		t.Fatal("request after the window should be allowed")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := newRateLimiter(5, 10*time.Millisecond)

	rl.allow("1.2.3.4")
	time.Sleep(15 * time.Millisecond)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.requests) != 0 {
		t.Errorf("cleanup left %d entries, want 0", len(rl.requests))
	}
}
