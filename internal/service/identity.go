package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"
)

// Identity is the caller as described by the identity provider.
type Identity struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Picture   string `json:"picture"`
}

// IdentityProvider runs the authorization-code flow against the hosted sign-in.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// OAuthProviderConfig locates the provider endpoints and client credentials.
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	RedirectURL  string
	Scopes       []string
}

// OAuthProvider is an IdentityProvider backed by golang.org/x/oauth2 and an
// OpenID userinfo endpoint.
type OAuthProvider struct {
	conf        *oauth2.Config
	userInfoURL string
}

func NewOAuthProvider(cfg OAuthProviderConfig) *OAuthProvider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}
	return &OAuthProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
	}
}

func (p *OAuthProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a token and resolves the identity behind it.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "exchange authorization code")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build userinfo request")
	}
	resp, err := p.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch userinfo")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("userinfo returned status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, errors.Wrap(err, "decode userinfo")
	}
	if identity.Subject == "" {
		return nil, errors.New("userinfo has no subject")
	}
	return &identity, nil
}
