package handlers

import (
	"errors"
	"net/http"
	"strings"

	"bookvisit/middleware"
	"bookvisit/models"
	"bookvisit/services/booker"
	"bookvisit/services/journey"
	"bookvisit/services/ratelimit"
	"bookvisit/services/session"
	"bookvisit/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// PageResponse is the view model a renderer turns into a page.
type PageResponse struct {
	Page       string              `json:"page"`
	Data       interface{}         `json:"data,omitempty"`
	Errors     []models.FieldError `json:"errors,omitempty"`
	FormValues map[string][]string `json:"formValues,omitempty"`
	Messages   []string            `json:"messages,omitempty"`
}

func render(c *gin.Context, page string, data interface{}, flash *models.Flash) {
	resp := PageResponse{Page: page, Data: data}
	if flash != nil {
		resp.Errors = flash.Errors
		resp.FormValues = flash.FormValues
		resp.Messages = flash.Messages
	}
	c.JSON(http.StatusOK, resp)
}

// save persists the session before any response so the browser's next
// request sees the new state.
func save(c *gin.Context, store session.Store) bool {
	if err := store.Set(c.Request.Context(), middleware.SessionID(c), middleware.UserSession(c)); err != nil {
		getLogger(c).Error("Failed to save user session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return false
	}
	return true
}

func redirect(c *gin.Context, store session.Store, location string) {
	if !save(c, store) {
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}

// redirectWithErrors sends the booker back to the form with the submitted
// values and the field errors.
func redirectWithErrors(c *gin.Context, store session.Store, location string, fieldErrors []models.FieldError) {
	us := middleware.UserSession(c)
	values := map[string][]string{}
	if err := c.Request.ParseForm(); err == nil {
		for k, v := range c.Request.PostForm {
			values[k] = v
		}
	}
	us.Flash = &models.Flash{Errors: fieldErrors, FormValues: values}
	redirect(c, store, location)
}

func pageName(step journey.Step) string {
	return strings.TrimPrefix(step.Path(), "/book-visit/")
}

// handleError turns service errors into not-found, rate-limited, redirect
// or generic error responses.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, journey.ErrNotFound), errors.Is(err, booker.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Page not found", "")
	case errors.Is(err, ratelimit.ErrRateLimitExceeded):
		c.JSON(http.StatusTooManyRequests, utils.ErrorResponse{
			Page:    "rate-limited",
			Message: "Too many requests",
			Details: "Try again later.",
		})
	case errors.Is(err, journey.ErrNoJourney), errors.Is(err, booker.ErrNotRegistered):
		c.Redirect(http.StatusSeeOther, journey.HomePath)
	default:
		getLogger(c).Error("Request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// bindingErrors maps gin binding failures to field errors keyed by form name.
func bindingErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.FieldError{{Field: "form", Kind: journey.KindInvalid}}
	}
	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{Field: lowerFirst(fe.Field()), Kind: kindForTag(fe.Tag())})
	}
	return out
}

func kindForTag(tag string) string {
	switch tag {
	case "required":
		return journey.KindRequired
	case "max":
		return journey.KindTooLong
	case "min":
		return journey.KindTooShort
	}
	return journey.KindInvalid
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
