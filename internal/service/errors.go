package service

import (
	"errors"
)

var (
	// ErrNotFound reports that a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied reports a mutation attempted by a non-author.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidCredentials reports a failed login or password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a malformed or semantically invalid payload:
// non-positive amount, duplicate ingredient id, self-follow, duplicate
// favorite/cart/follow and the like. Rendered as 400 with its message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
