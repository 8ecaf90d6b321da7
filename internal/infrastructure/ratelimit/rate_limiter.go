package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy is the sustained rate and burst allowed for one action.
type Policy struct {
	PerMinute int
	Burst     int
}

func (p Policy) limiter() *rate.Limiter {
	perMinute := p.PerMinute
	if perMinute <= 0 {
		perMinute = 1
	}
	burst := p.Burst
	if burst <= 0 {
		burst = perMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per subject and action.
type RateLimiter struct {
	policies map[string]Policy
	fallback Policy
	buckets  map[string]*bucket
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(fallback Policy, policies map[string]Policy) *RateLimiter {
	if policies == nil {
		policies = make(map[string]Policy)
	}
	return &RateLimiter{
		policies: policies,
		fallback: fallback,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

func (rl *RateLimiter) bucketFor(subject, action string) *bucket {
	key := subject + ":" + action

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		policy, ok := rl.policies[action]
		if !ok {
			policy = rl.fallback
		}
		b = &bucket{limiter: policy.limiter()}
		rl.buckets[key] = b
	}
	b.lastSeen = rl.now()
	return b
}

// Allow consumes one token for subject doing action. When the bucket is empty
// it reports how long until the next token.
func (rl *RateLimiter) Allow(subject, action string) (bool, time.Duration) {
	b := rl.bucketFor(subject, action)

	now := rl.now()
	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	if wait := r.DelayFrom(now); wait > 0 {
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

// GetStatus returns the tokens currently available and the bucket size.
func (rl *RateLimiter) GetStatus(subject, action string) (tokens int, maxTokens int) {
	key := subject + ":" + action

	rl.mutex.Lock()
	b, ok := rl.buckets[key]
	rl.mutex.Unlock()

	if !ok {
		return 0, 0
	}
	return int(b.limiter.TokensAt(rl.now())), b.limiter.Burst()
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			}
		}
	}()
}
