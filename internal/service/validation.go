package service

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/adhub/adhub/backend/internal/countries"
)

// MaxBioLength applies to content creators only.
const MaxBioLength = 500

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("country", func(fl validator.FieldLevel) bool {
		return countries.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("social", func(fl validator.FieldLevel) bool {
		return validSocialURL(fl.Field().String(), fl.Param())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		_, err := time.Parse("15:04", raw)
		return err == nil
	})
	return v
}

// validSocialURL accepts https URLs on domain or one of its subdomains.
func validSocialURL(raw, domain string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func validateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return validationError("bio", "bio must be at most 500 characters")
	}
	return nil
}

// structError turns the first validator failure into a FieldError.
func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.WithSecondaryError(ErrValidation, err)
	}
	fe := verrs[0]
	return validationError(fe.Field(), describeTag(fe))
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "username":
		return "must be 3-30 letters, digits or underscores"
	case "country":
		return "unknown country code"
	case "social":
		return "must be an https link on " + fe.Param()
	case "clock":
		return "must be a time in HH:MM format"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching q literally anywhere. Use it
// with ESCAPE '\'.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
