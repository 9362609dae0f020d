// Package store wraps the Redis-backed persistence: the donor ledger and
// counter, the newsletter set, webhook idempotency keys, and the rate-limit
// windows. A nil client is a supported state everywhere; each feature degrades
// on its own rather than taking the whole request down.
package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campaignapi/logger"
)

// NewRedisClient connects to Redis from a URL (redis:// or rediss://, token in
// the URL). Returns nil when no URL is configured; callers treat nil as
// "feature disabled", not as an error.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		logger.Log.Warn("REDIS_URL not set; donor counter, ledger, newsletter and rate limiting are disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Log.Error("invalid Redis URL; continuing without a store", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warn("Redis ping failed at startup; store operations will be retried per-request", zap.Error(err))
	}

	return client
}
