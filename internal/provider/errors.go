package provider

import (
	"errors"
	"fmt"
)

// UpstreamError reports a transport failure or a non-success status from one
// source. StatusCode is zero when no response was received.
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: upstream status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: upstream unavailable: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned by token lookup when the upstream has no asset
// with the requested id.
type NotFoundError struct {
	TokenID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("token %q not found", e.TokenID)
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
