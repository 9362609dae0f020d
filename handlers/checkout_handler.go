package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campaignapi/compliance"
	"campaignapi/httperr"
	"campaignapi/models"
	"campaignapi/payment"
)

// CheckoutHandler turns a validated contribution into a hosted checkout
// session. It persists nothing: a tab closed mid-checkout leaves no trace in
// the ledger, and the webhook is the only writer.
type CheckoutHandler struct {
	provider payment.CheckoutProvider
}

// NewCheckoutHandler creates a checkout handler. provider may be nil when the
// payment integration is unconfigured; checkout requests then answer 503.
func NewCheckoutHandler(provider payment.CheckoutProvider) *CheckoutHandler {
	return &CheckoutHandler{provider: provider}
}

// CreateCheckout handles POST /api/checkout.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	if h.provider == nil {
		respondError(c, httperr.ServiceUnavailable("donations are temporarily unavailable"))
		return
	}

	var req models.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, httperr.InvalidInput("invalid request body"))
		return
	}

	// Every rule here runs before any paid API call.
	ctype, err := compliance.ValidateContributorType(req.ContributorType)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := compliance.ValidateAmount(req.Amount, ctype); err != nil {
		respondError(c, err)
		return
	}
	if err := compliance.ValidateProfile(&req.FormData, ctype); err != nil {
		respondError(c, err)
		return
	}

	tier := payment.TierLabel(req.Amount, compliance.SanitizeMetadataValue(strings.TrimSpace(req.TierName)))
	metadata := compliance.BuildCheckoutMetadata(req.Amount, ctype, req.IsRecurring, tier, &req.FormData)

	url, err := h.provider.CreateSession(c.Request.Context(), &payment.CheckoutRequest{
		Amount:    req.Amount,
		Recurring: req.IsRecurring,
		Tier:      tier,
		Metadata:  metadata,
	})
	if err != nil {
		respondError(c, httperr.Upstream("unable to start checkout, please try again", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetSessionSummary handles GET /api/checkout/session for the thank-you page.
func (h *CheckoutHandler) GetSessionSummary(c *gin.Context) {
	if h.provider == nil {
		respondError(c, httperr.ServiceUnavailable("donations are temporarily unavailable"))
		return
	}
	sessionID := c.Query("session_id")
	if sessionID == "" {
		respondError(c, httperr.InvalidInput("session_id is required"))
		return
	}

	summary, err := h.provider.SessionSummary(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, httperr.Upstream("unable to load session", err))
		return
	}
	c.JSON(http.StatusOK, summary)
}
