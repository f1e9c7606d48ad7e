// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

// Package ratelimit implements fixed-window admission control keyed by
// caller identity. The window state lives behind the Store interface so
// a single-process deployment uses the in-memory store while multi-node
// deployments share a SQL-backed one; the check-and-increment is atomic
// per key in every backend.
package ratelimit

import (
	"context"
	"time"

	"github.com/productdecoder/search-gw/pkg/provider"
)

// Stores is the registry of window store backends. Backends self-register
// via init(); instantiate with Stores.New(ctx, name, params).
var Stores = provider.NewRegistry[Store]("rate_limit_store")

// Store holds per-key window state {count, windowStart}. Incr atomically
// resets an expired window, increments the counter and returns the
// post-increment count with the current window start. Two concurrent
// calls for one key must never observe the same count.
type Store interface {
	Incr(ctx context.Context, key string) (count int, windowStart time.Time, err error)
	Close() error
}

// Result is the outcome of one admission check
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time     // when the current window ends
	RetryAfter time.Duration // > 0 only when rejected
}

// Limiter applies the max-requests policy on top of a Store. Every call
// to Allow counts against the window, including requests that later fail
// for other reasons.
type Limiter struct {
	store  Store
	max    int
	window time.Duration
	now    func() time.Time
}

// NewLimiter creates a Limiter. The window duration must match the one
// the store was built with.
func NewLimiter(store Store, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window, now: time.Now}
}

// Allow records one request for key and reports whether it is admitted.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, windowStart, err := l.store.Incr(ctx, key)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Limit:     l.max,
		Remaining: l.max - count,
		Reset:     windowStart.Add(l.window),
	}
	if res.Remaining < 0 {
		res.Remaining = 0
	}

	if count > l.max {
		res.Allowed = false
		retryAfter := l.window - l.now().Sub(windowStart)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		res.RetryAfter = retryAfter
		return res, nil
	}

	res.Allowed = true
	return res, nil
}
