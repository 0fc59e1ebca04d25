package errors

import (
	"errors"
	"fmt"

	"plugin-browser/domain"
)

// IsInvalidAction checks if err was caused by an unsupported browse action.
func IsInvalidAction(err error) bool {
	return errors.Is(err, domain.ErrInvalidAction)
}

// IsUpstreamUnavailable checks if the catalog could not be reached or answered non-2xx.
func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, domain.ErrUpstreamUnavailable)
}

// IsUpstreamMalformed checks if the catalog answered with an unusable body.
func IsUpstreamMalformed(err error) bool {
	return errors.Is(err, domain.ErrUpstreamMalformed)
}

func NewInvalidActionError(layer, component, operation, action string) *AppContextError {
	return NewAppContextError(
		CodeInvalidAction,
		"Invalid action.",
		layer,
		component,
		operation,
		fmt.Errorf("%w: %q", domain.ErrInvalidAction, action),
		map[string]any{"action": action},
	)
}

func NewServiceUnavailableError(layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}
	context["error_type"] = "upstream_unavailable"
	return NewAppContextError(
		CodeServiceUnavailable,
		"The plugin directory is temporarily unavailable.",
		layer,
		component,
		operation,
		cause,
		context,
	)
}

func NewBadGatewayError(layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}
	context["error_type"] = "upstream_malformed"
	return NewAppContextError(
		CodeBadGateway,
		"The plugin directory returned an invalid response.",
		layer,
		component,
		operation,
		cause,
		context,
	)
}

func NewUnauthorizedError(layer, component, operation string, cause error) *AppContextError {
	return NewAppContextError(CodeUnauthorized, "Unauthorized.", layer, component, operation, cause, nil)
}

func NewCacheError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}
	context["error_type"] = "cache"
	return NewAppContextError(CodeCacheError, message, layer, component, operation, cause, context)
}

func NewUnknownContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}
	context["error_type"] = "unknown"
	return NewAppContextError(CodeUnknown, message, layer, component, operation, cause, context)
}

// FromUpstream classifies a catalog failure into the matching browse error.
// Anything that is not a malformed body is treated as unavailability.
func FromUpstream(layer, component, operation string, err error, context map[string]any) *AppContextError {
	if IsUpstreamMalformed(err) {
		return NewBadGatewayError(layer, component, operation, err, context)
	}
	return NewServiceUnavailableError(layer, component, operation, err, context)
}
