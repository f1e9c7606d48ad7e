// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

func init() {
	Stores.Register("memory", func(_ context.Context, params map[string]string) (Store, error) {
		window, err := time.ParseDuration(params["window"])
		if err != nil {
			return nil, fmt.Errorf("memory store: invalid window %q: %w", params["window"], err)
		}
		return NewMemoryStore(window), nil
	})
}

type memoryWindow struct {
	count int
	start time.Time
}

// MemoryStore keeps window state in process memory under one mutex.
// Entries for idle keys are dropped by a background janitor.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates an in-memory window store
func NewMemoryStore(window time.Duration) *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*memoryWindow),
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Incr implements Store. The whole read-check-write happens under the
// lock, so concurrent callers can never both observe a stale count.
func (s *MemoryStore) Incr(_ context.Context, key string) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w := s.windows[key]
	if w == nil || now.Sub(w.start) >= s.window {
		w = &memoryWindow{start: now}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.start, nil
}

// Close stops the janitor
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, w := range s.windows {
		if now.Sub(w.start) >= s.window {
			delete(s.windows, key)
		}
	}
}
