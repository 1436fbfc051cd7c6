package handlers

import (
	"net/http"

	"bookvisit/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the latest redis check.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
