package types

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/adhub/adhub/backend/internal/models"
)

// TokenClaims represents the claims in a session token
type TokenClaims struct {
	jwt.RegisteredClaims
	ProfileID string          `json:"profile_id"`
	Email     string          `json:"email,omitempty"`
	UserType  models.UserType `json:"user_type,omitempty"`
}

// Session is the authenticated caller of a request. Handlers receive it from
// the auth middleware instead of reading any process-wide state.
type Session struct {
	ProfileID string
	Email     string
	UserType  models.UserType
	Token     string
}

// SessionFromClaims builds a Session from validated claims.
func SessionFromClaims(claims *TokenClaims, token string) *Session {
	return &Session{
		ProfileID: claims.ProfileID,
		Email:     claims.Email,
		UserType:  claims.UserType,
		Token:     token,
	}
}
