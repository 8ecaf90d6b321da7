package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(start time.Time) (*RateLimiter, *time.Time) {
	now := start
	rl := NewRateLimiter(Policy{PerMinute: 60}, map[string]Policy{
		"create_post": {PerMinute: 2, Burst: 2},
	})
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestAllowExhaustsBurst(t *testing.T) {
	rl, now := newTestLimiter(time.Unix(1000, 0))

	ok, _ := rl.Allow("u1", "create_post")
	assert.True(t, ok)
	ok, _ = rl.Allow("u1", "create_post")
	assert.True(t, ok)

	ok, wait := rl.Allow("u1", "create_post")
	assert.False(t, ok)
	assert.InDelta(t, 30*time.Second, wait, float64(time.Second))

	*now = now.Add(30 * time.Second)
	ok, _ = rl.Allow("u1", "create_post")
	assert.True(t, ok)
}

func TestAllowIsPerSubjectAndAction(t *testing.T) {
	rl, _ := newTestLimiter(time.Unix(1000, 0))

	for i := 0; i < 2; i++ {
		rl.Allow("u1", "create_post")
	}
	ok, _ := rl.Allow("u1", "create_post")
	assert.False(t, ok)

	ok, _ = rl.Allow("u2", "create_post")
	assert.True(t, ok)

	ok, _ = rl.Allow("u1", "like_post")
	assert.True(t, ok)

	tokens, max := rl.GetStatus("u1", "like_post")
	assert.Equal(t, 59, tokens)
	assert.Equal(t, 60, max)
}

func TestRejectedCallDoesNotConsume(t *testing.T) {
	rl, now := newTestLimiter(time.Unix(1000, 0))

	rl.Allow("u1", "create_post")
	rl.Allow("u1", "create_post")
	for i := 0; i < 5; i++ {
		ok, _ := rl.Allow("u1", "create_post")
		assert.False(t, ok)
	}

	*now = now.Add(30 * time.Second)
	ok, _ := rl.Allow("u1", "create_post")
	assert.True(t, ok)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl, now := newTestLimiter(time.Unix(1000, 0))

	rl.Allow("u1", "create_post")
	*now = now.Add(2 * time.Hour)
	rl.Allow("u2", "create_post")

	rl.Cleanup(time.Hour)

	_, max := rl.GetStatus("u1", "create_post")
	assert.Zero(t, max)
	_, max = rl.GetStatus("u2", "create_post")
	assert.Equal(t, 2, max)
}
