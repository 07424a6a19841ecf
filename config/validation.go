package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	lines := make([]string, len(e))
	for i, v := range e {
		lines[i] = v.Error()
	}
	return strings.Join(lines, "\n")
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	Required []string
	URLs     []string
}

var requirements = map[Environment]ConfigRequirements{
	Development: {
		Required: []string{"DB_PASSWORD", "JWT_SECRET"},
	},
	Test: {
		Required: []string{"JWT_SECRET"},
	},
	CI: {
		Required: []string{"DB_PASSWORD", "JWT_SECRET"},
	},
	Production: {
		Required: []string{
			"DB_PASSWORD",
			"JWT_SECRET",
			"OAUTH_CLIENT_ID",
			"OAUTH_CLIENT_SECRET",
			"WEBHOOK_SECRET",
			"S3_PUBLIC_URL",
		},
		URLs: []string{
			"OAUTH_AUTH_URL",
			"OAUTH_TOKEN_URL",
			"OAUTH_USERINFO_URL",
			"OAUTH_REDIRECT_URL",
			"FRONTEND_URL",
		},
	},
}

// fields maps each setting name to its loaded value.
func fields(cfg *Config) map[string]string {
	return map[string]string{
		"DB_PASSWORD":         cfg.DBPassword,
		"JWT_SECRET":          cfg.JWTSecret,
		"OAUTH_CLIENT_ID":     cfg.OAuthClientID,
		"OAUTH_CLIENT_SECRET": cfg.OAuthClientSecret,
		"WEBHOOK_SECRET":      cfg.WebhookSecret,
		"S3_PUBLIC_URL":       cfg.S3PublicURL,
		"OAUTH_AUTH_URL":      cfg.OAuthAuthURL,
		"OAUTH_TOKEN_URL":     cfg.OAuthTokenURL,
		"OAUTH_USERINFO_URL":  cfg.OAuthUserInfoURL,
		"OAUTH_REDIRECT_URL":  cfg.OAuthRedirectURL,
		"FRONTEND_URL":        cfg.FrontendURL,
	}
}

// ValidateConfig checks if the configuration meets the requirements for its environment.
// All problems are reported together.
func ValidateConfig(cfg *Config) error {
	reqs := requirements[cfg.Env]
	values := fields(cfg)

	var errs ValidationErrors
	for _, name := range reqs.Required {
		if values[name] == "" {
			errs = append(errs, ValidationError{Field: name, Message: "is required"})
		}
	}
	for _, name := range reqs.URLs {
		u, err := url.Parse(values[name])
		if values[name] == "" || err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{Field: name, Message: "must be an absolute URL"})
		}
	}
	if cfg.Env == Production && len(cfg.JWTSecret) > 0 && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be at least 32 characters"})
	}
	if cfg.Env == Production && cfg.WebhookSecret != "" && !strings.HasPrefix(cfg.WebhookSecret, "whsec_") {
		errs = append(errs, ValidationError{Field: "WEBHOOK_SECRET", Message: "must start with whsec_"})
	}
	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
