package service

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/adhub/adhub/backend/internal/travel"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("resource not found")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrWrongUserType  = errors.New("operation not available for this account type")
	ErrDeadlinePassed = errors.New("the application deadline has passed")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrBadSignature   = errors.New("invalid webhook signature")
)

// FieldError describes a rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap makes every FieldError match ErrValidation.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func validationError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// markTravelErr folds schedule validation failures into ErrValidation.
func markTravelErr(err error) error {
	var fe *travel.FieldError
	if errors.As(err, &fe) {
		return validationError(fe.Field, fe.Message)
	}
	return err
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(ErrNotFound, "%s not found", what)
	}
	return errors.Wrapf(err, "load %s", what)
}

// isUniqueViolation recognises duplicate-key failures from postgres and sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
