package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// SessionCookieName carries the session token for browser requests.
const SessionCookieName = "adhub_session"

const sessionKey = "session"

type sessionCtxKey struct{}

// SessionValidator turns a bearer token into the caller's session.
type SessionValidator interface {
	Session(ctx context.Context, token string) (*types.Session, error)
}

// RequireSession rejects requests without a valid session.
func RequireSession(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
			return
		}

		session, err := validator.Session(c.Request.Context(), token)
		if err != nil {
			msg := "invalid session"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: msg})
			return
		}

		SetSession(c, session)
		c.Next()
	}
}

// OptionalSession attaches a session when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalSession(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFrom(c); token != "" {
			if session, err := validator.Session(c.Request.Context(), token); err == nil {
				SetSession(c, session)
			}
		}
		c.Next()
	}
}

// SetSession stores the session on the gin context and on the request context.
func SetSession(c *gin.Context, session *types.Session) {
	c.Set(sessionKey, session)
	c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))
}

// SessionFrom returns the caller's session, if any.
func SessionFrom(c *gin.Context) (*types.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*types.Session)
	return session, ok && session != nil
}

// ViewerID is the caller's profile id, or "" for anonymous requests.
func ViewerID(c *gin.Context) string {
	if session, ok := SessionFrom(c); ok {
		return session.ProfileID
	}
	return ""
}

func WithSession(ctx context.Context, session *types.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionFromContext reads the session placed by SetSession.
func SessionFromContext(ctx context.Context) (*types.Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(*types.Session)
	return session, ok && session != nil
}

func tokenFrom(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
