package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	"campaignapi/compliance"
	"campaignapi/logger"
	"campaignapi/models"
	"campaignapi/notify"
	"campaignapi/payment"
	"campaignapi/store"
)

const billingReasonSubscriptionCreate = "subscription_create"

// LedgerStore is the slice of the donor ledger the webhook needs.
type LedgerStore interface {
	Configured() bool
	Append(ctx context.Context, record models.DonationRecord) error
	Increment(ctx context.Context) error
	MarkEventProcessed(ctx context.Context, eventID string) (first bool, err error)
}

// StripeWebhookHandler reconciles asynchronous Stripe events into the donor
// ledger. Past signature verification every classified path acknowledges with
// 200, including events we decide to skip; anything else invites a retry
// storm for payments that are already final.
type StripeWebhookHandler struct {
	endpointSecret string
	ledger         LedgerStore
	subscriptions  payment.SubscriptionMetadataFetcher
	notifier       notify.Notifier
}

func NewStripeWebhookHandler(endpointSecret string, ledger LedgerStore, subs payment.SubscriptionMetadataFetcher, notifier notify.Notifier) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		endpointSecret: endpointSecret,
		ledger:         ledger,
		subscriptions:  subs,
		notifier:       notifier,
	}
}

// HandleWebhook processes incoming Stripe webhook events.
func (h *StripeWebhookHandler) HandleWebhook(c *gin.Context) {
	if h.endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook secret not configured"})
		return
	}

	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Log.Warn("error reading webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read body"})
		return
	}

	// The raw body goes to the verifier unparsed; parsing first would
	// invalidate the signature check.
	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.endpointSecret)
	if err != nil {
		logger.Log.Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	ctx := c.Request.Context()

	// Delivery is at-least-once; remember event ids so a redelivery is a
	// no-op. With no store the classification rules below are the only
	// dedup we have.
	if first, err := h.ledger.MarkEventProcessed(ctx, event.ID); err == nil && !first {
		logger.Log.Info("duplicate webhook delivery skipped", zap.String("event_id", event.ID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		h.handleCheckoutCompleted(ctx, event)
	case "invoice.payment_succeeded":
		h.handleInvoiceSucceeded(ctx, event)
	default:
		logger.Log.Debug("unhandled event type", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// shouldRecordCheckout decides whether a completed checkout session is a
// confirmed contribution. Subscriptions are paid by the time this event
// fires even when payment_status lags, so subscription mode counts; unpaid
// one-time sessions do not.
func shouldRecordCheckout(sess *stripe.CheckoutSession) bool {
	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
		sess.Mode == stripe.CheckoutSessionModeSubscription
}

// isFirstSubscriptionInvoice reports whether an invoice belongs to
// subscription creation. That contribution is already recorded by the
// checkout-completed event; processing it again would double-count the donor
// and double-send receipts.
func isFirstSubscriptionInvoice(billingReason string) bool {
	return billingReason == billingReasonSubscriptionCreate
}

func (h *StripeWebhookHandler) handleCheckoutCompleted(ctx context.Context, event stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		logger.Log.Error("error parsing checkout session", zap.Error(err))
		return
	}

	if !shouldRecordCheckout(&sess) {
		logger.Log.Info("checkout session not in a recordable state; skipping",
			zap.String("session_id", sess.ID),
			zap.String("payment_status", string(sess.PaymentStatus)),
			zap.String("mode", string(sess.Mode)),
		)
		return
	}

	recurring := sess.Mode == stripe.CheckoutSessionModeSubscription
	record := compliance.DonationFromMetadata(sess.Metadata, sess.ID, recurring)
	h.reconcile(ctx, record)
}

// subscriptionRef tolerates both wire shapes of an invoice's subscription
// reference: a plain id string on older API versions, an expanded object on
// newer ones.
type subscriptionRef struct {
	ID string
}

func (r *subscriptionRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	return nil
}

// invoicePayload is the slice of the invoice event this handler reads.
type invoicePayload struct {
	ID            string          `json:"id"`
	BillingReason string          `json:"billing_reason"`
	AmountPaid    int64           `json:"amount_paid"`
	Subscription  subscriptionRef `json:"subscription"`
	Parent        struct {
		SubscriptionDetails struct {
			Subscription subscriptionRef `json:"subscription"`
		} `json:"subscription_details"`
	} `json:"parent"`
}

func (inv *invoicePayload) subscriptionID() string {
	if inv.Subscription.ID != "" {
		return inv.Subscription.ID
	}
	return inv.Parent.SubscriptionDetails.Subscription.ID
}

func (h *StripeWebhookHandler) handleInvoiceSucceeded(ctx context.Context, event stripe.Event) {
	var inv invoicePayload
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		logger.Log.Error("error parsing invoice", zap.Error(err))
		return
	}

	if isFirstSubscriptionInvoice(inv.BillingReason) {
		logger.Log.Info("first subscription invoice already handled at checkout; skipping",
			zap.String("invoice_id", inv.ID))
		return
	}

	subID := inv.subscriptionID()
	if subID == "" {
		logger.Log.Warn("renewal invoice without subscription reference; acknowledging without ledger entry",
			zap.String("invoice_id", inv.ID))
		return
	}

	// Renewal invoices carry no session metadata; donor context lives on the
	// parent subscription, seeded at original-checkout time. A failed lookup
	// is an accepted degradation: acknowledge, lose the record, no retries.
	metadata, err := h.subscriptions.SubscriptionMetadata(ctx, subID)
	if err != nil {
		logger.Log.Warn("renewal metadata lookup failed; acknowledging without ledger entry",
			zap.String("invoice_id", inv.ID),
			zap.String("subscription_id", subID),
			zap.Error(err))
		return
	}

	record := compliance.DonationFromMetadata(metadata, inv.ID, true)
	if record.Amount == 0 && inv.AmountPaid > 0 {
		record.Amount = int(inv.AmountPaid / 100)
	}
	h.reconcile(ctx, record)
}

// reconcile applies the ledger update and kicks off notifications. The
// counter increment and the record append are independent store operations
// issued concurrently, not a transaction: a partial failure is an accepted
// inconsistency window, but it has to be visible in the logs.
func (h *StripeWebhookHandler) reconcile(ctx context.Context, record models.DonationRecord) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := h.ledger.Increment(ctx); err != nil && !errors.Is(err, store.ErrUnconfigured) {
			logger.Log.Error("donor counter increment failed",
				zap.String("payment_ref", record.PaymentRef), zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := h.ledger.Append(ctx, record); err != nil && !errors.Is(err, store.ErrUnconfigured) {
			logger.Log.Error("donation record append failed",
				zap.String("payment_ref", record.PaymentRef), zap.Error(err))
		}
	}()
	wg.Wait()

	logger.Log.Info("donation reconciled",
		zap.Int("amount", record.Amount),
		zap.Bool("recurring", record.Recurring),
		zap.String("payment_ref", record.PaymentRef),
	)

	h.notifier.DonationReceived(record)
}
