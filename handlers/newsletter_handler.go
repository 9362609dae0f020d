package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaignapi/compliance"
	"campaignapi/httperr"
	"campaignapi/logger"
	"campaignapi/store"
)

// NewsletterHandler manages newsletter signups.
type NewsletterHandler struct {
	subscribers *store.Newsletter
}

func NewNewsletterHandler(subscribers *store.Newsletter) *NewsletterHandler {
	return &NewsletterHandler{subscribers: subscribers}
}

// Subscribe handles POST /api/newsletter. Adding the same email twice is a
// no-op success.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, httperr.InvalidInput("invalid request body"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !compliance.ValidEmail(email) {
		respondError(c, httperr.InvalidInput("a valid email address is required"))
		return
	}

	if !h.subscribers.Configured() {
		respondError(c, httperr.ServiceUnavailable("newsletter signups are temporarily unavailable"))
		return
	}
	if err := h.subscribers.Subscribe(c.Request.Context(), email); err != nil {
		logger.Log.Error("newsletter subscribe failed", zap.Error(err))
		respondError(c, httperr.ServiceUnavailable("newsletter signups are temporarily unavailable"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Count handles GET /api/newsletter.
func (h *NewsletterHandler) Count(c *gin.Context) {
	count, err := h.subscribers.Count(c.Request.Context())
	if err != nil {
		// Unconfigured or unreachable store reads as an empty list.
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
