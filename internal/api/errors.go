package api

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrWrongUserType, http.StatusForbidden},
	{service.ErrConflict, http.StatusConflict},
	{service.ErrDeadlinePassed, http.StatusUnprocessableEntity},
	{service.ErrTokenExpired, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrBadSignature, http.StatusUnauthorized},
}

// respondError maps a service error onto a status and a message safe to show.
// Unrecognised errors become a 500 and are left on the context for the
// request logger.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var fe *service.FieldError
	if errors.As(err, &fe) {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: fe.Message, Field: fe.Field})
		return
	}
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: publicMessage(err, service.ErrValidation)})
		return
	}

	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			c.JSON(s.status, middleware.ErrorResponse{Error: publicMessage(err, s.err)})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "internal server error"})
}

// publicMessage is the context added when the sentinel was wrapped, or the
// sentinel's own text.
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimSuffix(msg, ": "+sentinel.Error()); trimmed != msg && trimmed != "" {
		return trimmed
	}
	return sentinel.Error()
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: msg})
}

// mustSession returns the session set by RequireSession. Routes using it are
// always mounted behind that middleware.
func mustSession(c *gin.Context) (string, bool) {
	id := middleware.ViewerID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, middleware.ErrorResponse{Error: "authentication required"})
		return "", false
	}
	return id, true
}
