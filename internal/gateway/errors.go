package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by SignIn when the email is unknown
	// or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when a record keyed by id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned by SignUp when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// wrap tags a remote failure with the operation that produced it so the
// orchestrator boundary can surface one generic message.
func wrap(op string, err error) error {
	return fmt.Errorf("gateway: %s: %w", op, err)
}
