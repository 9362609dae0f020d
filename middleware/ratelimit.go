// Package middleware holds the gin middleware shared across routes.
package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campaignapi/logger"
)

// RateLimiter enforces named sliding-window budgets over a shared Redis
// store. Each bucket is independent; the window for a caller is the sorted
// set of its recent request timestamps.
//
// Defense-in-depth, not a security boundary: with no store configured, or on
// any store error, the limiter fails open and lets the request through.
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// retryAfterSeconds tells a blocked caller when the oldest retained request
// leaves the window, rounded up and never less than a second.
func retryAfterSeconds(oldestNanos int64, window time.Duration, now time.Time) int {
	reset := time.Unix(0, oldestNanos).Add(window)
	secs := int(math.Ceil(reset.Sub(now).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Limit returns a middleware allowing maxRequests per caller per window for
// the named bucket. Caller identity is the forwarded client IP, with a
// sentinel when absent.
func (rl *RateLimiter) Limit(bucket string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil {
			c.Next()
			return
		}

		caller := c.ClientIP()
		if caller == "" {
			caller = "unknown"
		}
		key := fmt.Sprintf("ratelimit:%s:%s", bucket, caller)

		now := time.Now()
		windowStart := now.Add(-window)

		pipe := rl.client.TxPipeline()
		pipe.ZRemRangeByScore(c.Request.Context(), key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
		pipe.ZAdd(c.Request.Context(), key, redis.Z{
			Score:  float64(now.UnixNano()),
			Member: now.UnixNano(),
		})
		count := pipe.ZCard(c.Request.Context(), key)
		oldest := pipe.ZRangeWithScores(c.Request.Context(), key, 0, 0)
		pipe.Expire(c.Request.Context(), key, window)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			logger.Log.Warn("rate limiter store error; failing open",
				zap.String("bucket", bucket), zap.Error(err))
			c.Next()
			return
		}

		used := int(count.Val())
		remaining := maxRequests - used
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if used > maxRequests {
			retry := int(window.Seconds())
			if entries := oldest.Val(); len(entries) > 0 {
				retry = retryAfterSeconds(int64(entries[0].Score), window, now)
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
