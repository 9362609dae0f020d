package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"campaignapi/models"
)

// DonorCountBase is the historical donor count accumulated before this
// service went live. The public count is base + live counter.
const DonorCountBase = 847

const (
	donationsKey  = "donations"
	donorCountKey = "donor_count"
)

// idempotencyTTL bounds how long processed webhook event ids are remembered.
// Stripe stops retrying an event well inside this window.
const idempotencyTTL = 30 * 24 * time.Hour

// Ledger is the donor ledger and counter repository. All methods tolerate a
// nil Redis client by reporting ErrUnconfigured.
type Ledger struct {
	client *redis.Client
}

// ErrUnconfigured is returned when no counter store is configured.
var ErrUnconfigured = fmt.Errorf("counter store not configured")

func NewLedger(client *redis.Client) *Ledger {
	return &Ledger{client: client}
}

// Configured reports whether a backing store is available.
func (l *Ledger) Configured() bool {
	return l.client != nil
}

// Append pushes one donation record onto the head of the ledger list. No
// dedup key is enforced here; duplicate suppression is the webhook handler's
// responsibility.
func (l *Ledger) Append(ctx context.Context, record models.DonationRecord) error {
	if l.client == nil {
		return ErrUnconfigured
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal donation record: %w", err)
	}
	return l.client.LPush(ctx, donationsKey, data).Err()
}

// Increment adds one to the donor counter. Fire-and-forget from the caller's
// perspective; the new value is not meaningful to the webhook path.
func (l *Ledger) Increment(ctx context.Context) error {
	if l.client == nil {
		return ErrUnconfigured
	}
	return l.client.Incr(ctx, donorCountKey).Err()
}

// ReadCount returns the public donor count and whether it is live. With no
// store configured (or a read failure) the fixed base count is returned with
// live=false so callers can distinguish a real count from the fallback.
func (l *Ledger) ReadCount(ctx context.Context) (count int, live bool) {
	if l.client == nil {
		return DonorCountBase, false
	}
	n, err := l.client.Get(ctx, donorCountKey).Int()
	if err == redis.Nil {
		return DonorCountBase, true
	}
	if err != nil {
		return DonorCountBase, false
	}
	return DonorCountBase + n, true
}

// MarkEventProcessed records a webhook event id with conflict-skip semantics.
// Returns true if this delivery is the first one seen. With no store the
// caller falls back to classification-rule dedup alone.
func (l *Ledger) MarkEventProcessed(ctx context.Context, eventID string) (first bool, err error) {
	if l.client == nil {
		return true, ErrUnconfigured
	}
	return l.client.SetNX(ctx, "webhook:event:"+eventID, 1, idempotencyTTL).Result()
}
