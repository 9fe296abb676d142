package security

import (
	"sync"
	"time"
)

// RateLimiter is a global sliding-window limiter for form submissions.
// It deliberately does not track individual IPs.
type RateLimiter struct {
	mu         sync.Mutex
	timestamps []time.Time
	max        int
	window     time.Duration
	now        func() time.Time
}

// NewRateLimiter allows max requests per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Allow records and admits a request if the window is not full.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	valid := r.timestamps[:0]
	for _, ts := range r.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	r.timestamps = valid

	if len(r.timestamps) >= r.max {
		return false
	}

	r.timestamps = append(r.timestamps, now)
	return true
}
