package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campaignapi/store"
)

// DonorCountHandler serves the public donor counter.
type DonorCountHandler struct {
	ledger *store.Ledger
}

func NewDonorCountHandler(ledger *store.Ledger) *DonorCountHandler {
	return &DonorCountHandler{ledger: ledger}
}

// GetCount handles GET /api/donors/count. With no backing store the fixed
// historical count is served and live=false tells callers it's the fallback.
func (h *DonorCountHandler) GetCount(c *gin.Context) {
	count, live := h.ledger.ReadCount(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"count": count, "live": live})
}
