package payment

import "context"

// CheckoutRequest is a compliance-validated contribution ready to be turned
// into a hosted checkout session. Metadata is built once by the caller and
// attached verbatim; the webhook reads it back unmodified.
type CheckoutRequest struct {
	Amount    int
	Recurring bool
	Tier      string
	Metadata  map[string]string
}

// SessionSummary is the minimal view of a completed session shown on the
// thank-you page.
type SessionSummary struct {
	Amount    int    `json:"amount"`
	Tier      string `json:"tier"`
	Recurring bool   `json:"recurring"`
}

// CheckoutProvider abstracts the payment provider's hosted checkout.
type CheckoutProvider interface {
	// CreateSession returns the hosted checkout URL. Nothing is charged or
	// persisted until the provider's webhook fires.
	CreateSession(ctx context.Context, req *CheckoutRequest) (url string, err error)
	// SessionSummary retrieves a session by the provider-issued token the
	// success redirect carries.
	SessionSummary(ctx context.Context, sessionID string) (*SessionSummary, error)
}

// SubscriptionMetadataFetcher looks up the metadata seeded on a subscription
// at original-checkout time; the webhook needs it for renewal invoices, which
// do not carry session metadata themselves.
type SubscriptionMetadataFetcher interface {
	SubscriptionMetadata(ctx context.Context, subscriptionID string) (map[string]string, error)
}
