package apperr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Services wrap these with context via Wrap; the
// controller boundary maps each kind to exactly one HTTP status.
var (
	ErrValidation   = errors.New("validation error")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)

// Wrap attaches a human-readable detail message to a kind. The detail is what
// ends up in the JSON error body.
func Wrap(kind error, detail string) error {
	return fmt.Errorf("%w: %s", kind, detail)
}

func Wrapf(kind error, format string, args ...any) error {
	return Wrap(kind, fmt.Sprintf(format, args...))
}

// Detail strips the kind prefix added by Wrap, leaving the message for the
// response body. Falls back to the full error text.
func Detail(err error) string {
	for _, kind := range []error{ErrValidation, ErrForbidden, ErrNotFound, ErrConflict, ErrInvalidState} {
		if errors.Is(err, kind) {
			prefix := kind.Error() + ": "
			msg := err.Error()
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}
