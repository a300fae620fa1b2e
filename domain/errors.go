package domain

import (
	"errors"
	"fmt"

	"event-signup/data/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAuthFailure       = errors.New("invalid username or password")
	ErrValidation        = errors.New("validation failed")
	ErrAlreadySignedUp   = errors.New("already signed up for this event")
	ErrNotSignedUp       = errors.New("not signed up for this event")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
)

// validationErr wraps ErrValidation with a short description of what was
// wrong, so callers can still match on errors.Is(err, ErrValidation).
func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// putErr translates storage-boundary schema rejections on writes into
// ErrValidation. Field bounds the input checks do not cover (username and
// event name length) still come back as a notice rather than a storage
// fault. Read-path schema errors stay untranslated: a stored record that no
// longer decodes is a fault, not bad input.
func putErr(err error) error {
	if errors.Is(err, models.ErrInvalidRecord) {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return err
}
