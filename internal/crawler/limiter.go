package crawler

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// OriginLimiter spaces requests per origin. Each origin gets a lazily created
// token bucket; the effective interval is the larger of the default cadence
// and any crawl delay the origin's robots.txt requested.
type OriginLimiter struct {
	defaultInterval time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delays   map[string]time.Duration
}

// NewOriginLimiter creates a limiter with the given default request interval.
func NewOriginLimiter(defaultInterval time.Duration) *OriginLimiter {
	return &OriginLimiter{
		defaultInterval: defaultInterval,
		limiters:        make(map[string]*rate.Limiter),
		delays:          make(map[string]time.Duration),
	}
}

// SetDelay registers an origin's requested crawl delay. Only widens the
// interval; a delay shorter than the default cadence is ignored.
func (l *OriginLimiter) SetDelay(origin string, delay time.Duration) {
	origin = strings.ToLower(origin)

	l.mu.Lock()
	defer l.mu.Unlock()

	if delay <= l.defaultInterval {
		return
	}
	l.delays[origin] = delay
	if limiter, ok := l.limiters[origin]; ok {
		limiter.SetLimit(rate.Every(delay))
	}
}

// Wait blocks until the origin's next request slot, or until ctx is done.
func (l *OriginLimiter) Wait(ctx context.Context, origin string) error {
	if origin == "" {
		return nil
	}
	origin = strings.ToLower(origin)

	l.mu.Lock()
	limiter, ok := l.limiters[origin]
	if !ok {
		interval := l.defaultInterval
		if delay, ok := l.delays[origin]; ok && delay > interval {
			interval = delay
		}
		if interval <= 0 {
			interval = time.Millisecond
		}
		limiter = rate.NewLimiter(rate.Every(interval), 1)
		l.limiters[origin] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
