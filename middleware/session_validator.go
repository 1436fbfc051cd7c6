package middleware

import (
	"net/http"

	"bookvisit/services/journey"
	"bookvisit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingJourneyValidator sends the booker home when the requested step's
// earlier answers are missing from the session, typically after a back
// button or a stale bookmark. Routes outside the step table are not found.
func BookingJourneyValidator() gin.HandlerFunc {
	return func(c *gin.Context) {
		step, ok := journey.StepForPath(c.FullPath())
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, utils.ErrorResponse{Page: "not-found", Message: "Page not found"})
			return
		}

		us := UserSession(c)
		if !step.Ready(us) {
			utils.GetLogger().Warn("Booking journey state missing for step",
				zap.String("stage", step.String()),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("bookerReference", us.BookerReference()))
			c.Redirect(http.StatusSeeOther, journey.HomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}
