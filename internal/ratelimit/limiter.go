package ratelimit

import (
	"context"
	"os"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// API represents the different remote endpoints we call
type API string

const (
	// APISite represents the market website
	APISite API = "site"
	// APITelegram represents the Telegram Bot API
	APITelegram API = "telegram"
)

// Limiter manages rate limits for different APIs
type Limiter struct {
	limiters map[API]*rate.Limiter
	mu       sync.RWMutex
}

var (
	instance *Limiter
	once     sync.Once
)

// GetLimiter returns the singleton rate limiter instance
func GetLimiter() *Limiter {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New creates a limiter with the default per-API limits.
func New() *Limiter {
	l := &Limiter{
		limiters: make(map[API]*rate.Limiter),
	}
	l.initLimiters()
	return l
}

// initLimiters initializes rate limiters for each API with conservative defaults
func (l *Limiter) initLimiters() {
	// Tests talk to local servers; never throttle them
	if os.Getenv("GO_TESTING") == "1" || isTestMode() {
		l.limiters[APISite] = rate.NewLimiter(rate.Inf, 1)
		l.limiters[APITelegram] = rate.NewLimiter(rate.Inf, 1)
		return
	}

	// Site: one page load every 10 seconds is plenty for a five minute cadence
	l.limiters[APISite] = rate.NewLimiter(rate.Limit(1.0/10.0), 1)

	// Telegram: at most 20 messages per minute to the same channel
	l.limiters[APITelegram] = rate.NewLimiter(rate.Limit(20.0/60.0), 1)
}

// Set replaces the limit for an API.
func (l *Limiter) Set(api API, limit rate.Limit, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[api] = rate.NewLimiter(limit, burst)
}

// isTestMode checks if we're running in test mode
func isTestMode() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

// Wait blocks until the rate limiter permits an event for the given API
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, api API) error {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given API may happen now
func (l *Limiter) Allow(api API) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		return true
	}

	return limiter.Allow()
}
