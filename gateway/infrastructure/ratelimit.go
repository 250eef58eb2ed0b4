package infrastructure

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SubjectRateLimiter keeps a token bucket per authenticated subject so
// one user hammering the GDPR endpoints cannot starve the rest.
type SubjectRateLimiter struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu       sync.Mutex
	limiters map[string]*subjectLimiter
}

type subjectLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewSubjectRateLimiter(limit rate.Limit, burst int) *SubjectRateLimiter {
	return &SubjectRateLimiter{
		limit:    limit,
		burst:    burst,
		ttl:      10 * time.Minute,
		limiters: make(map[string]*subjectLimiter),
	}
}

// Allow reports whether the subject may perform one more request now.
func (rl *SubjectRateLimiter) Allow(subject string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	sl, ok := rl.limiters[subject]
	if !ok {
		sl = &subjectLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[subject] = sl
	}
	sl.lastSeen = time.Now()
	return sl.limiter.Allow()
}

// Run evicts idle subject buckets until ctx is canceled.
func (rl *SubjectRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict(time.Now())
		}
	}
}

func (rl *SubjectRateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for subject, sl := range rl.limiters {
		if now.Sub(sl.lastSeen) > rl.ttl {
			delete(rl.limiters, subject)
		}
	}
}
