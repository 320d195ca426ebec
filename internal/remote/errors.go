package remote

import (
	"errors"
	"fmt"
	"strings"
)

// Failure taxonomy for remote collection calls. Callers match with
// errors.Is; wrapped variants carry the transport detail.
var (
	// ErrUnauthorized: missing, invalid or expired credential. Surfaced as a
	// re-authentication redirect, never as a retry.
	ErrUnauthorized = errors.New("remote: unauthorized")

	// ErrNotFound: the mutation target is already absent server-side.
	ErrNotFound = errors.New("remote: not found")

	// ErrUnavailable: network failure or a collaborator error. Optimistic
	// local state is rolled back before this reaches the user.
	ErrUnavailable = errors.New("remote: service unavailable")
)

// ValidationError reports a client-side precondition failure. No network
// call was made when one of these is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing or invalid %s", strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
