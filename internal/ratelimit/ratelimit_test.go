// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

package ratelimit

import (
	"context"
	"testing"
	"time"
)

// testLimiter returns a limiter with a controllable clock and GC roll
// that never fires unless forced.
func testLimiter(start time.Time) (*MemoryLimiter, *time.Time) {
	now := start
	l := NewMemoryLimiter()
	l.now = func() time.Time { return now }
	l.gcRoll = func() float64 { return 1.0 }
	return l, &now
}

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	l, _ := testLimiter(time.Now())
	class := Class{Limit: 3, Window: time.Minute}
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		d, err := l.Check(ctx, "1.2.3.4", "/api/login", class)
		if err != nil {
			t.Fatalf("Check: %v", err)
		}
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
		if want := 3 - i; d.Remaining != want {
			t.Errorf("request %d: Remaining = %d, want %d", i, d.Remaining, want)
		}
	}

	d, err := l.Check(ctx, "1.2.3.4", "/api/login", class)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if d.Allowed {
		t.Error("request over limit should be denied")
	}
	if d.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", d.Remaining)
	}
	if d.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", d.RetryAfter)
	}
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	start := time.Now()
	l, now := testLimiter(start)
	class := Class{Limit: 1, Window: time.Minute}
	ctx := context.Background()

	if d, _ := l.Check(ctx, "a", "/p", class); !d.Allowed {
		t.Fatal("first request should be allowed")
	}
	if d, _ := l.Check(ctx, "a", "/p", class); d.Allowed {
		t.Fatal("second request should be denied")
	}

	// Advancing past the window boundary starts a fresh count.
	*now = start.Add(time.Minute)
	d, _ := l.Check(ctx, "a", "/p", class)
	if !d.Allowed {
		t.Error("request after window reset should be allowed")
	}
	if want := start.Add(2 * time.Minute); !d.ResetAt.Equal(want) {
		t.Errorf("ResetAt = %v, want %v", d.ResetAt, want)
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := testLimiter(time.Now())
	class := Class{Limit: 1, Window: time.Minute}
	ctx := context.Background()

	if d, _ := l.Check(ctx, "1.1.1.1", "/login", class); !d.Allowed {
		t.Fatal("first request should be allowed")
	}
	if d, _ := l.Check(ctx, "1.1.1.1", "/login", class); d.Allowed {
		t.Fatal("same key should be denied")
	}

	// Different address, same path.
	if d, _ := l.Check(ctx, "2.2.2.2", "/login", class); !d.Allowed {
		t.Error("different address should have its own window")
	}
	// Same address, different path.
	if d, _ := l.Check(ctx, "1.1.1.1", "/register", class); !d.Allowed {
		t.Error("different path should have its own window")
	}
}

func TestMemoryLimiter_DeniedDoesNotExtendWindow(t *testing.T) {
	start := time.Now()
	l, _ := testLimiter(start)
	class := Class{Limit: 1, Window: time.Minute}
	ctx := context.Background()

	first, _ := l.Check(ctx, "a", "/p", class)
	for i := 0; i < 5; i++ {
		d, _ := l.Check(ctx, "a", "/p", class)
		if !d.ResetAt.Equal(first.ResetAt) {
			t.Fatalf("denied request %d moved ResetAt from %v to %v", i, first.ResetAt, d.ResetAt)
		}
	}
}

func TestMemoryLimiter_RetryAfterRoundsUp(t *testing.T) {
	start := time.Now()
	l, now := testLimiter(start)
	class := Class{Limit: 1, Window: time.Minute}
	ctx := context.Background()

	_, _ = l.Check(ctx, "a", "/p", class)
	*now = start.Add(59*time.Second + 500*time.Millisecond)

	d, _ := l.Check(ctx, "a", "/p", class)
	if d.Allowed {
		t.Fatal("request inside window should be denied")
	}
	if d.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %v, want 1s", d.RetryAfter)
	}
}

func TestMemoryLimiter_SweepRemovesExpiredEntries(t *testing.T) {
	start := time.Now()
	l, now := testLimiter(start)
	class := Class{Limit: 5, Window: time.Minute}
	ctx := context.Background()

	_, _ = l.Check(ctx, "a", "/p", class)
	_, _ = l.Check(ctx, "b", "/p", class)
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}

	// Force a sweep on the next check, after both windows lapse.
	*now = start.Add(2 * time.Minute)
	l.gcRoll = func() float64 { return 0.0 }
	_, _ = l.Check(ctx, "c", "/p", class)

	if l.Len() != 1 {
		t.Errorf("Len = %d after sweep, want 1", l.Len())
	}
}

func TestRouteClasses(t *testing.T) {
	tests := []struct {
		name   string
		class  Class
		limit  int
		window time.Duration
	}{
		{"auth", ClassAuth, 5, 15 * time.Minute},
		{"register", ClassRegister, 3, time.Hour},
		{"api", ClassAPI, 100, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.class.Limit != tt.limit {
				t.Errorf("Limit = %d, want %d", tt.class.Limit, tt.limit)
			}
			if tt.class.Window != tt.window {
				t.Errorf("Window = %v, want %v", tt.class.Window, tt.window)
			}
		})
	}
}
