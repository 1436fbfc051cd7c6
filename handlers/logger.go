package handlers

import (
	"bookvisit/middleware"
	"bookvisit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the service logger tagged with the request's booker.
func getLogger(c *gin.Context) *zap.Logger {
	logger := utils.GetLogger().With(zap.String("path", c.Request.URL.Path))
	if us := middleware.UserSession(c); us != nil && us.BookerReference() != "" {
		logger = logger.With(zap.String("bookerReference", us.BookerReference()))
	}
	return logger
}
