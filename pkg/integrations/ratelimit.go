package integrations

import (
	"sync"
	"time"

	"github.com/yair/billettlyst/pkg/domain"
)

// quotaLimiter enforces the Discovery API's rolling daily quota locally so a
// burst of fan-out requests cannot burn through it.
type quotaLimiter struct {
	mu         sync.Mutex
	requests   []time.Time
	limit      int
	windowSize time.Duration
	now        func() time.Time
}

func newQuotaLimiter(dailyLimit int) *quotaLimiter {
	return &quotaLimiter{
		requests:   make([]time.Time, 0),
		limit:      dailyLimit,
		windowSize: 24 * time.Hour,
		now:        time.Now,
	}
}

func (r *quotaLimiter) Allow() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	// Remove requests older than window
	cutoff := now.Add(-r.windowSize)
	valid := r.requests[:0]
	for _, reqTime := range r.requests {
		if reqTime.After(cutoff) {
			valid = append(valid, reqTime)
		}
	}
	r.requests = valid

	if len(r.requests) >= r.limit {
		return domain.ErrRateLimitExceeded
	}

	r.requests = append(r.requests, now)
	return nil
}
