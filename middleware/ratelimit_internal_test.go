package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryAfterSeconds(t *testing.T) {
	now := time.Now()
	window := time.Minute

	// Oldest request 20s ago: its slot frees up in 40s.
	oldest := now.Add(-20 * time.Second).UnixNano()
	assert.Equal(t, 40, retryAfterSeconds(oldest, window, now))

	// Partial seconds round up rather than telling the caller to come back early.
	oldest = now.Add(-19500 * time.Millisecond).UnixNano()
	assert.Equal(t, 41, retryAfterSeconds(oldest, window, now))

	// An already-expired entry still asks for a minimal backoff.
	oldest = now.Add(-2 * window).UnixNano()
	assert.Equal(t, 1, retryAfterSeconds(oldest, window, now))
}
