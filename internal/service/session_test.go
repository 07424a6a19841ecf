package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhub/adhub/backend/internal/models"
)

func TestSessionIssuerRoundTrip(t *testing.T) {
	issuer := NewSessionIssuer("test-secret", time.Hour)
	kind := models.UserTypeBusinessOwner
	profile := &models.Profile{ID: "user_1", Email: "owner@example.com", UserType: &kind}

	token, err := issuer.Issue(profile)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.ProfileID)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, models.UserTypeBusinessOwner, claims.UserType)
}

func TestSessionIssuerRejects(t *testing.T) {
	issuer := NewSessionIssuer("test-secret", time.Hour)
	profile := &models.Profile{ID: "user_1"}

	_, err := issuer.Parse("invalid.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewSessionIssuer("other-secret", time.Hour)
	token, err := other.Issue(profile)
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return past }
	token, err = issuer.Issue(profile)
	require.NoError(t, err)
	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
