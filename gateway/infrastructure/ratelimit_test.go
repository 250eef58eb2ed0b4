package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestSubjectRateLimiter_Allow(t *testing.T) {
	// Effectively no refill during the test; only the burst counts
	rl := NewSubjectRateLimiter(rate.Limit(0.001), 2)

	assert.True(t, rl.Allow("auth0|alice"))
	assert.True(t, rl.Allow("auth0|alice"))
	assert.False(t, rl.Allow("auth0|alice"))

	// Buckets are per subject
	assert.True(t, rl.Allow("auth0|bob"))
}

func TestSubjectRateLimiter_RefillsOverTime(t *testing.T) {
	rl := NewSubjectRateLimiter(rate.Limit(100), 1)

	assert.True(t, rl.Allow("auth0|alice"))
	assert.False(t, rl.Allow("auth0|alice"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, rl.Allow("auth0|alice"))
}

func TestSubjectRateLimiter_EvictsIdleSubjects(t *testing.T) {
	rl := NewSubjectRateLimiter(rate.Limit(0.001), 1)

	assert.True(t, rl.Allow("auth0|alice"))
	assert.False(t, rl.Allow("auth0|alice"))

	// Eviction resets the bucket once the subject went idle past the TTL
	rl.evict(time.Now().Add(11 * time.Minute))
	assert.True(t, rl.Allow("auth0|alice"))

	// A fresh request keeps the bucket alive through eviction
	assert.False(t, rl.Allow("auth0|alice"))
	rl.evict(time.Now())
	assert.False(t, rl.Allow("auth0|alice"))
}
