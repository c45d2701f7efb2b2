package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterEnforcesWindow(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("user-1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("user-1") {
		t.Fatalf("fourth request should be rejected")
	}

	// a different caller has its own bucket
	if !l.Allow("user-2") {
		t.Fatalf("other user should be unaffected")
	}
}

func TestLimiterIgnoresAnonymous(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		if !l.Allow("") {
			t.Fatalf("callers without an identity are never limited")
		}
	}
}

func TestLimiterWindowExpiry(t *testing.T) {
	l := NewLimiter(1, 20*time.Millisecond)
	defer l.Stop()

	if !l.Allow("user-1") {
		t.Fatalf("first request should pass")
	}
	if l.Allow("user-1") {
		t.Fatalf("second request inside the window should fail")
	}

	time.Sleep(30 * time.Millisecond)
	if !l.Allow("user-1") {
		t.Fatalf("request after the window should pass again")
	}
}
