package services

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of committees, papers, submissions and the
// like that reference a row that does not exist. Controllers map it to
// 404; it is never conflated with a validation failure.
var ErrNotFound = errors.New("not found")

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

// ValidationError is a user-correctable failure with a specific message.
// Controllers map it to 400 and surface the message as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
