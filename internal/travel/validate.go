package travel

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/adhub/adhub/backend/internal/countries"
	"github.com/adhub/adhub/backend/internal/models"
)

// ErrInvalidSchedule marks every validation failure returned by ValidateSchedule.
var ErrInvalidSchedule = errors.New("invalid travel schedule")

// FieldError names the form field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidSchedule
}

func invalid(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// ValidateSchedule checks a create or update request against today.
func ValidateSchedule(today, start, end models.Date, city, country string) error {
	if start.IsZero() {
		return invalid("start_date", "start date is required")
	}
	if end.IsZero() {
		return invalid("end_date", "end date is required")
	}
	if start.Before(today) {
		return invalid("start_date", "start date cannot be in the past")
	}
	if end.Before(start) {
		return invalid("end_date", "end date must be on or after the start date")
	}
	if strings.TrimSpace(city) == "" {
		return invalid("destination_city", "destination city is required")
	}
	if strings.TrimSpace(country) == "" {
		return invalid("destination_country", "destination country is required")
	}
	if !countries.Valid(country) {
		return invalid("destination_country", "unknown country code")
	}
	return nil
}
