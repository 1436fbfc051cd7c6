package middleware

import (
	"net/http"
	"strings"

	"bookvisit/models"
	"bookvisit/services/booker"
	"bookvisit/services/session"
	"bookvisit/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookieName carries the booker token when it is not sent as a bearer header.
const SessionCookieName = "booker_session"

const (
	contextSessionID   = "sessionID"
	contextUserSession = "userSession"
)

// BookerAuthMiddleware verifies the booker's session token, loads the user
// session it points at and makes sure the booker is registered upstream.
func BookerAuthMiddleware(secret []byte, store session.Store, bookers booker.BookerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Page: "sign-in", Message: "Sign in required"})
			return
		}

		claims, err := utils.ParseBookerToken(secret, tokenString)
		if err != nil {
			logger.Debug("Rejected booker token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Page: "sign-in", Message: "Sign in required"})
			return
		}

		ctx := c.Request.Context()
		us, err := store.Get(ctx, claims.SessionID)
		if err != nil {
			logger.Error("Failed to load user session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Page: "error", Message: "Internal Server Error"})
			return
		}

		if us.BookerReference() == "" {
			auth := models.AuthDetails{OneLoginSub: claims.Subject, Email: claims.Email, PhoneNumber: claims.PhoneNumber}
			if err := bookers.Bootstrap(ctx, us, auth); err != nil {
				logger.Error("Failed to register booker", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Page: "error", Message: "Internal Server Error"})
				return
			}
			if err := store.Set(ctx, claims.SessionID, us); err != nil {
				logger.Error("Failed to save user session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Page: "error", Message: "Internal Server Error"})
				return
			}
		}

		c.Set(contextSessionID, claims.SessionID)
		c.Set(contextUserSession, us)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// UserSession returns the session loaded by BookerAuthMiddleware.
func UserSession(c *gin.Context) *models.UserSession {
	if v, ok := c.Get(contextUserSession); ok {
		if us, ok := v.(*models.UserSession); ok {
			return us
		}
	}
	return nil
}

// SessionID returns the session key loaded by BookerAuthMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(contextSessionID)
}

// WithUserSession puts a session on the context the way BookerAuthMiddleware
// does. Used where the token check happens elsewhere, such as tests.
func WithUserSession(c *gin.Context, sessionID string, us *models.UserSession) {
	c.Set(contextSessionID, sessionID)
	c.Set(contextUserSession, us)
}
