package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

var notFoundErrors = []error{
	domain.ErrHabitNotFound,
	domain.ErrMealNotFound,
	domain.ErrSupplementNotFound,
	domain.ErrAddictionNotFound,
	domain.ErrReminderNotFound,
	domain.ErrThemeNotFound,
	domain.ErrUserNotFound,
	collection.ErrNotFound,
}

var badRequestErrors = []error{
	domain.ErrEmptyPrompt,
	domain.ErrUnknownCapability,
	domain.ErrLabelEmpty,
	domain.ErrUsernameEmpty,
	domain.ErrDisplayNameEmpty,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError maps service errors to status codes. Unknown errors are
// attached to the context for the logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	switch {
	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isAny(err, badRequestErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotLoggedIn), errors.Is(err, services.ErrSessionMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrThemeBuiltIn):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, collection.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrVoiceUnavailable):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "state is still loading, retry shortly"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// intParam parses a numeric path parameter, answering 400 when it is not one.
func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type validator interface {
	Validate() error
}

// bindValid decodes the JSON body into dst and runs its Validate method.
// Unknown fields are rejected.
func bindValid(c *gin.Context, dst validator) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		badRequest(c, err)
		return false
	}
	if err := dst.Validate(); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}
