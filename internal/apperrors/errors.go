package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the service. Handlers map these to HTTP
// statuses; the session service collapses verification failures into
// ErrNoSession so that no token-level detail leaks to the client.
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no valid session")

	// Token errors (internal only, never surfaced past the session service)
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrTokenExpired   = errors.New("token expired")

	// Configuration errors - fatal, the deployment is misconfigured
	ErrMissingSecret = errors.New("missing auth secret")
	ErrMissingAPIKey = errors.New("missing provider API key")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
