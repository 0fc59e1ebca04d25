package widget

import (
	"errors"
	"net/http"

	"plugin-browser/domain"
)

// ErrorKind classifies a failed browse request for display.
type ErrorKind string

const (
	ErrorUpstreamUnavailable ErrorKind = "upstream_unavailable"
	ErrorConnection          ErrorKind = "connection"
	ErrorMisconfigured       ErrorKind = "misconfigured"
	ErrorConnectivity        ErrorKind = "connectivity"
	ErrorGeneric             ErrorKind = "generic"
)

var messages = map[ErrorKind]string{
	ErrorUpstreamUnavailable: "The plugin directory is temporarily unavailable. Please try again in a few minutes.",
	ErrorConnection:          "There was a problem connecting to the plugin directory. Please try again.",
	ErrorMisconfigured:       "The plugin browser endpoint was not found. Please check the site configuration.",
	ErrorConnectivity:        "Unable to reach the server. Please check your internet connection and try again.",
	ErrorGeneric:             "Something went wrong while loading plugins. Please try again.",
}

// BrowseError is what a failed fetch leaves behind. The previous results
// stay visible and Retry re-issues the request.
type BrowseError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *BrowseError) Error() string {
	return e.Message + " (" + e.Err.Error() + ")"
}

func (e *BrowseError) Unwrap() error {
	return e.Err
}

// Categorize maps a browse failure to a user-facing message.
func Categorize(err error) *BrowseError {
	kind := ErrorGeneric

	var httpErr *domain.ExternalHTTPError
	switch {
	case errors.As(err, &httpErr):
		switch httpErr.StatusCode {
		case http.StatusServiceUnavailable:
			kind = ErrorUpstreamUnavailable
		case http.StatusBadGateway:
			kind = ErrorConnection
		case http.StatusNotFound:
			kind = ErrorMisconfigured
		}
	case errors.Is(err, domain.ErrEndpointUnreachable):
		kind = ErrorConnectivity
	}

	return &BrowseError{Kind: kind, Message: messages[kind], Err: err}
}
