package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes that cross the use-case boundary.
// Cache failures never appear here: they are caught and logged at every cache
// call site and the operation proceeds against the source of truth.
var (
	// ErrNotFound marks a requested trip or saved-trip identity that does
	// not exist. User-facing, never retried.
	ErrNotFound = errors.New("not found")

	// ErrUpstream marks a trips-provider failure that survived retries
	// (unreachable, timed out, or server error). Surfaced to the caller as
	// a failed operation, never masked by stale cache reuse.
	ErrUpstream = errors.New("upstream provider failure")

	// ErrUnauthorized marks a missing or invalid bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation marks malformed input rejected before it reaches a use
	// case.
	ErrValidation = errors.New("validation failed")
)

// NotFoundf builds a not-found error with diagnostic detail.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf builds a validation error with diagnostic detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Upstreamf wraps err as an upstream failure, keeping it inspectable with
// errors.Is/errors.As.
func Upstreamf(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if err == nil {
		return fmt.Errorf("%s: %w", msg, ErrUpstream)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrUpstream, err)
}

// UpstreamStatusError is a terminal (non-retryable) HTTP failure from the
// trips provider. It carries the status and response body so the boundary can
// report what the provider actually said.
type UpstreamStatusError struct {
	Status int
	Body   string
	URL    string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("trips api responded with %d: %s", e.Status, e.Body)
}

func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstream
}
