package services

import (
	"errors"
	"fmt"
)

// Error variables
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource already exists")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidPage is returned for a page token or page size below 1.
	ErrInvalidPage = fmt.Errorf("%w: invalid page", ErrValidation)
	// ErrInvalidCredentials is returned when an email/password pair does not match.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	// ErrIncorrectPassword is returned when the old password of a credential update does not verify.
	ErrIncorrectPassword = fmt.Errorf("%w: incorrect old password", ErrUnauthorized)
)

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
