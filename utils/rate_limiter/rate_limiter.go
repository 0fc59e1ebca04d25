package rate_limiter

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostRateLimiter spaces outbound requests per host. A zero interval
// disables limiting entirely.
type HostRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	interval time.Duration
	burst    int
}

func NewHostRateLimiter(interval time.Duration, burst int) *HostRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &HostRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
		burst:    burst,
	}
}

// Enabled reports whether WaitForHost may block.
func (h *HostRateLimiter) Enabled() bool {
	return h != nil && h.interval > 0
}

// WaitForHost blocks until a request to rawURL's host is allowed or ctx ends.
func (h *HostRateLimiter) WaitForHost(ctx context.Context, rawURL string) error {
	if !h.Enabled() {
		return ctx.Err()
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return &url.Error{Op: "parse", URL: rawURL, Err: errors.New("missing host in URL")}
	}

	return h.limiterFor(strings.ToLower(u.Host)).Wait(ctx)
}

func (h *HostRateLimiter) limiterFor(host string) *rate.Limiter {
	h.mu.RLock()
	limiter, ok := h.limiters[host]
	h.mu.RUnlock()
	if ok {
		return limiter
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if limiter, ok := h.limiters[host]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Every(h.interval), h.burst)
	h.limiters[host] = limiter
	return limiter
}
