package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAction       = errors.New("invalid action")
	ErrUpstreamUnavailable = errors.New("upstream catalog unavailable")
	ErrUpstreamMalformed   = errors.New("upstream catalog returned a malformed response")
	ErrCacheKeyOutsideNS   = errors.New("cache key outside namespace")

	// ErrEndpointUnreachable is returned by clients of the browse endpoint
	// when no HTTP response was received.
	ErrEndpointUnreachable = errors.New("browse endpoint unreachable")
)

// ExternalHTTPError represents a non-2xx answer from a remote HTTP service.
type ExternalHTTPError struct {
	StatusCode int
	URL        string
	Status     string
}

func (e *ExternalHTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.URL)
}
