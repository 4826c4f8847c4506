// Package ratelimit provides a sliding-window message limiter keyed by chat.
package ratelimit

import (
	"sync"
	"time"
)

type Limiter struct {
	mu      sync.Mutex
	hits    map[int64][]time.Time
	window  time.Duration
	maxHits int
}

func NewLimiter(window time.Duration, maxHits int) *Limiter {
	return &Limiter{
		hits:    make(map[int64][]time.Time),
		window:  window,
		maxHits: maxHits,
	}
}

// Allow reports whether the chat may send another message in the current
// window, and records the hit if so.
func (l *Limiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-l.window)

	// Drop hits that fell out of the window
	if hits, exists := l.hits[chatID]; exists {
		valid := hits[:0]
		for _, hit := range hits {
			if hit.After(windowStart) {
				valid = append(valid, hit)
			}
		}
		l.hits[chatID] = valid
	}

	if len(l.hits[chatID]) >= l.maxHits {
		return false
	}

	l.hits[chatID] = append(l.hits[chatID], now)
	return true
}
