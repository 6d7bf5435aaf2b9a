// Package ratelimit bounds how often a logical action may run. Submissions
// and edits consult it before mutating anything; the limiter never blocks a
// read.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter reports whether the action named by identifier may proceed.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// Memory is a mutex-guarded sliding-window limiter for dev and tests;
// for prod use the Redis one.
type Memory struct {
	max    int
	window time.Duration

	mu    sync.Mutex
	hits  map[string][]time.Time
	now   func() time.Time
}

// NewMemory creates a limiter allowing max actions per window per
// identifier.
func NewMemory(max int, window time.Duration) *Memory {
	if max <= 0 {
		max = 1
	}
	return &Memory{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records an attempt and reports whether it fits in the window.
func (m *Memory) Allow(_ context.Context, identifier string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)

	kept := m.hits[identifier][:0]
	for _, t := range m.hits[identifier] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= m.max {
		m.hits[identifier] = kept
		return false, nil
	}
	m.hits[identifier] = append(kept, now)
	return true, nil
}
