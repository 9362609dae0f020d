package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaignapi/httperr"
	"campaignapi/logger"
)

// respondError maps an application error onto the response. Wrapped provider
// errors are logged, never leaked to the client.
func respondError(c *gin.Context, err error) {
	appErr := httperr.From(err)
	if appErr.Code >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr),
		)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
