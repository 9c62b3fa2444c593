// Package ratelimit implements a fixed-window in-memory rate limiter,
// used to slow down credential guessing on the login endpoint.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/jekabolt/storefront-insights/internal/middleware"
)

type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	span    time.Duration
	max     int
	stopCh  chan struct{}
}

type window struct {
	count     int
	expiresAt time.Time
}

// NewLimiter allows max requests per key within each span. A background
// goroutine evicts expired windows until Stop is called.
func NewLimiter(span time.Duration, max int) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		span:    span,
		max:     max,
		stopCh:  make(chan struct{}),
	}
	go l.evictLoop()
	return l
}

// Allow reports whether a request for key fits in the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.span)}
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many requests key has left in its window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || time.Now().After(w.expiresAt) {
		return l.max
	}
	if left := l.max - w.count; left > 0 {
		return left
	}
	return 0
}

func (l *Limiter) Stop() {
	close(l.stopCh)
}

// Middleware rejects requests over the per-client-IP limit with 429.
// It relies on middleware.ClientIdentifier running earlier in the chain.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(middleware.ClientIP(r.Context())) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for key, w := range l.windows {
				if now.After(w.expiresAt) {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		case <-l.stopCh:
			return
		}
	}
}
