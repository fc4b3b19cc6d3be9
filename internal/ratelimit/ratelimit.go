// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ratelimit implements fixed-window request throttling keyed by
// client address and route path. Counters live either in an in-process
// map (single instance) or in Redis (horizontally scaled deployments).
package ratelimit

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// Class describes the ceiling for one route class.
type Class struct {
	// Limit is the maximum number of requests per window.
	Limit int
	// Window is the fixed window size. Counters reset entirely at
	// window boundaries; this is not a sliding window.
	Window time.Duration
}

// Route classes.
var (
	// ClassAuth covers login and other credential endpoints.
	ClassAuth = Class{Limit: 5, Window: 15 * time.Minute}
	// ClassRegister covers account registration.
	ClassRegister = Class{Limit: 3, Window: time.Hour}
	// ClassAPI covers the general API surface.
	ClassAPI = Class{Limit: 100, Window: 15 * time.Minute}
)

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is how long the caller must wait before the window
	// resets. Zero when the request is allowed.
	RetryAfter time.Duration
}

// Limiter gates request volume per (clientAddress, routePath) key.
//
// The in-memory implementation is process-local: a deployment with more
// than one instance undercounts true traffic. Configure the Redis
// backend when scaling horizontally.
type Limiter interface {
	Check(ctx context.Context, addr, path string, class Class) (Decision, error)
}

// gcProbability is the chance that a single check sweeps expired
// entries, bounding memory growth without a background task.
const gcProbability = 0.01

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps fixed-window counters in an in-process map.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	// gcRoll returns a value in [0,1); overridable in tests.
	gcRoll func() float64
}

// NewMemoryLimiter creates a process-local limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		now:     time.Now,
		gcRoll:  rand.Float64,
	}
}

// Check counts a request against the (addr, path) window and decides
// whether it may proceed.
func (l *MemoryLimiter) Check(_ context.Context, addr, path string, class Class) (Decision, error) {
	key := addr + "|" + path

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.gcRoll() < gcProbability {
		l.sweepLocked(now)
	}

	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(class.Window)}
		l.entries[key] = e
		return allowed(class, e), nil
	}

	e.count++
	if e.count > class.Limit {
		return denied(class, e, now), nil
	}
	return allowed(class, e), nil
}

// Len reports the number of live entries. Used by tests and the health
// endpoint.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// sweepLocked deletes every entry whose window has already expired.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for k, e := range l.entries {
		if !now.Before(e.resetAt) {
			delete(l.entries, k)
		}
	}
}

func allowed(class Class, e *entry) Decision {
	remaining := class.Limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   true,
		Limit:     class.Limit,
		Remaining: remaining,
		ResetAt:   e.resetAt,
	}
}

func denied(class Class, e *entry, now time.Time) Decision {
	retry := e.resetAt.Sub(now)
	return Decision{
		Allowed:    false,
		Limit:      class.Limit,
		Remaining:  0,
		ResetAt:    e.resetAt,
		RetryAfter: time.Duration(math.Ceil(retry.Seconds())) * time.Second,
	}
}
