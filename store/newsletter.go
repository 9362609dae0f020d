package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const newsletterKey = "newsletter_subscribers"

// Newsletter stores subscriber emails in a sorted set scored by signup time.
// NX insert gives set semantics: re-subscribing is a no-op, the original
// signup time is kept.
type Newsletter struct {
	client *redis.Client
}

func NewNewsletter(client *redis.Client) *Newsletter {
	return &Newsletter{client: client}
}

func (n *Newsletter) Configured() bool {
	return n.client != nil
}

// Subscribe adds an email; idempotent.
func (n *Newsletter) Subscribe(ctx context.Context, email string) error {
	if n.client == nil {
		return ErrUnconfigured
	}
	return n.client.ZAddNX(ctx, newsletterKey, redis.Z{
		Score:  float64(time.Now().Unix()),
		Member: email,
	}).Err()
}

// Count returns the number of distinct subscribers.
func (n *Newsletter) Count(ctx context.Context) (int64, error) {
	if n.client == nil {
		return 0, ErrUnconfigured
	}
	return n.client.ZCard(ctx, newsletterKey).Result()
}
