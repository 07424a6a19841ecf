package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/models"
	"github.com/adhub/adhub/backend/internal/types"
)

// Reasons a sign-in callback sends the browser back to /sign-in.
const (
	ReasonMissingCode         = "missing_code"
	ReasonInvalidState        = "invalid_state"
	ReasonExchangeFailed      = "exchange_failed"
	ReasonProfileLookupFailed = "profile_lookup_failed"
	ReasonSessionFailed       = "session_failed"
)

const (
	SignInPath       = "/sign-in"
	ProfileSetupPath = "/profile-setup"
)

// SignInResult is the outcome of an OAuth callback. Token is empty when the
// sign-in failed, in which case Reason is set.
type SignInResult struct {
	Redirect string
	Token    string
	Reason   string
	Profile  *models.Profile
}

func failedSignIn(reason string) *SignInResult {
	return &SignInResult{
		Redirect: SignInPath + "?error=" + url.QueryEscape(reason),
		Reason:   reason,
	}
}

// AuthService reconciles identity provider sign-ins with local profiles.
type AuthService struct {
	profiles IProfileService
	provider IdentityProvider
	states   StateStore
	issuer   *SessionIssuer
	logger   *logging.Logger
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(profiles IProfileService, provider IdentityProvider, states StateStore, issuer *SessionIssuer, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		profiles: profiles,
		provider: provider,
		states:   states,
		issuer:   issuer,
		logger:   logger,
	}
}

// BeginSignIn remembers where to send the user afterwards and returns the
// provider URL to redirect to.
func (s *AuthService) BeginSignIn(ctx context.Context, redirectTo string) (string, error) {
	state := uuid.NewString()
	if err := s.states.Put(ctx, state, SafeRedirect(redirectTo)); err != nil {
		s.logger.ErrorContext(ctx, "failed to store sign-in state", "error", err)
		return "", err
	}
	return s.provider.AuthCodeURL(state), nil
}

// CompleteSignIn handles the provider callback. It never returns an error;
// failures are expressed as a redirect to the sign-in page with a reason.
func (s *AuthService) CompleteSignIn(ctx context.Context, code, state string) *SignInResult {
	if strings.TrimSpace(code) == "" {
		return failedSignIn(ReasonMissingCode)
	}

	destination, ok, err := s.states.Take(ctx, state)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load sign-in state", "error", err)
	}
	if err != nil || !ok {
		return failedSignIn(ReasonInvalidState)
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "authorization code exchange failed", "error", err)
		return failedSignIn(ReasonExchangeFailed)
	}

	redirect := SafeRedirect(destination)
	profile, err := s.profiles.Get(ctx, identity.Subject)
	switch {
	case errors.Is(err, ErrNotFound):
		profile = s.bootstrap(ctx, identity)
		redirect = ProfileSetupPath
	case err != nil:
		s.logger.ErrorContext(ctx, "profile lookup failed", "profile_id", identity.Subject, "error", err)
		return failedSignIn(ReasonProfileLookupFailed)
	case !profile.IsProfileCompleted:
		redirect = ProfileSetupPath
	}

	token, err := s.issuer.Issue(profile)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue session", "profile_id", profile.ID, "error", err)
		return failedSignIn(ReasonSessionFailed)
	}

	return &SignInResult{Redirect: redirect, Token: token, Profile: profile}
}

// bootstrap creates the skeleton profile for a first sign-in. A failure is
// logged and the in-memory skeleton is used; the setup page retries the write.
func (s *AuthService) bootstrap(ctx context.Context, identity *Identity) *models.Profile {
	profile, err := s.profiles.Bootstrap(ctx, identity.Subject, identity.Email, identity.FirstName, identity.LastName, identity.Picture)
	if err != nil {
		s.logger.ErrorContext(ctx, "profile bootstrap failed", "profile_id", identity.Subject, "error", err)
		return &models.Profile{
			ID:        identity.Subject,
			Email:     identity.Email,
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
		}
	}
	return profile
}

// Session validates a session token.
func (s *AuthService) Session(ctx context.Context, token string) (*types.Session, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return nil, err
	}
	return types.SessionFromClaims(claims, token), nil
}

func (s *AuthService) SessionTTLSeconds() int {
	return int(s.issuer.TTL().Seconds())
}

// SafeRedirect keeps post-sign-in redirects on this site.
func SafeRedirect(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return "/"
	}
	return target
}
