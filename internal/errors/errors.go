package errors

import (
	"errors"
	"fmt"
)

// Common error types for the panel console
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")

	// Token storage errors
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenStore     = errors.New("token store failure")
	ErrInvalidPayload = errors.New("invalid token payload")

	// Client errors
	ErrInvalidBaseURL = errors.New("invalid base url")
	ErrEncodeBody     = errors.New("failed to encode request body")
	ErrDecodeBody     = errors.New("failed to decode response body")

	// Command errors
	ErrMissingArgument = errors.New("missing argument")
	ErrUnknownCommand  = errors.New("unknown command")
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

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
