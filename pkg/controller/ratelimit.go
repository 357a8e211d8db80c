package controller

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"registrar/pkg/serrors"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than the idle TTL are dropped by Cleanup.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// NewRateLimiter allows rps requests per second with the given burst per client.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
		now:     time.Now,
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[key]; ok {
		ent.lastSeen = now

		return ent.lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.entries[key] = &limiterEntry{lim: lim, lastSeen: now}

	return lim
}

// Allow consumes a token of the key's bucket.
func (l *RateLimiter) Allow(key string) bool {
	if l.rps <= 0 {
		return true
	}

	return l.limiter(key).AllowN(l.now(), 1)
}

// Cleanup drops buckets not used within the idle TTL.
func (l *RateLimiter) Cleanup() {
	cutoff := l.now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (l *RateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

// Middleware rejects requests of clients that ran out of tokens with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(GetClientIP(r)) {
			retry := 1
			if l.rps > 0 && float64(l.rps) < 1 {
				retry = int(1 / float64(l.rps))
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			WriteError(r.Context(), w, serrors.With(serrors.ErrRateLimited, "too many requests, try again later"))

			return
		}

		next.ServeHTTP(w, r)
	})
}
