package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/subscription"
	"go.uber.org/zap"

	"campaignapi/compliance"
	"campaignapi/logger"
)

// StripeCheckout implements CheckoutProvider and SubscriptionMetadataFetcher
// against Stripe's hosted checkout.
type StripeCheckout struct {
	siteURL string
}

// NewStripeCheckout creates a Stripe checkout provider. siteURL is the public
// site origin used to build the success and cancel redirect targets.
func NewStripeCheckout(apiKey, siteURL string) *StripeCheckout {
	stripe.Key = apiKey
	return &StripeCheckout{siteURL: siteURL}
}

// CreateSession creates a hosted checkout session configured for a one-time
// payment or a monthly subscription and returns its URL.
func (s *StripeCheckout) CreateSession(ctx context.Context, req *CheckoutRequest) (string, error) {
	params := s.buildSessionParams(ctx, req)
	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	logger.Log.Info("created checkout session",
		zap.String("session_id", sess.ID),
		zap.Int("amount", req.Amount),
		zap.Bool("recurring", req.Recurring),
	)
	return sess.URL, nil
}

// buildSessionParams constructs the session parameters. The unit amount is in
// minor units (cents); currency is fixed to USD.
func (s *StripeCheckout) buildSessionParams(ctx context.Context, req *CheckoutRequest) *stripe.CheckoutSessionParams {
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String("usd"),
		UnitAmount: stripe.Int64(int64(req.Amount) * 100),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(fmt.Sprintf("Campaign Contribution - %s", req.Tier)),
		},
	}

	mode := stripe.CheckoutSessionModePayment
	if req.Recurring {
		mode = stripe.CheckoutSessionModeSubscription
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String("month"),
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: priceData,
				Quantity:  stripe.Int64(1),
			},
		},
		// {CHECKOUT_SESSION_ID} is a Stripe-side placeholder filled in on
		// redirect; the thank-you page uses it to fetch a session summary.
		SuccessURL: stripe.String(s.siteURL + "/donate/thank-you?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.siteURL + "/donate"),
	}
	params.Context = ctx

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.Recurring {
		// Copy the metadata onto the subscription itself so renewal invoices
		// can recover donor context after the session is long gone.
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: req.Metadata,
		}
	}

	return params
}

// SessionSummary fetches a session by id for the thank-you page.
func (s *StripeCheckout) SessionSummary(ctx context.Context, sessionID string) (*SessionSummary, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	return &SessionSummary{
		Amount:    int(sess.AmountTotal / 100),
		Tier:      sess.Metadata[compliance.MetaTier],
		Recurring: sess.Mode == stripe.CheckoutSessionModeSubscription,
	}, nil
}

// SubscriptionMetadata fetches the metadata stored on a subscription at
// original-checkout time.
func (s *StripeCheckout) SubscriptionMetadata(ctx context.Context, subscriptionID string) (map[string]string, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	sub, err := subscription.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve subscription %s: %w", subscriptionID, err)
	}
	return sub.Metadata, nil
}
