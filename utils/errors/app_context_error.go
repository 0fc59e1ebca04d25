package errors

import (
	"fmt"
	"net/http"
)

const (
	CodeInvalidAction      = "INVALID_ACTION"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeBadGateway         = "BAD_GATEWAY"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeCacheError         = "CACHE_ERROR"
	CodeUnknown            = "UNKNOWN_ERROR"
)

// AppContextError carries where an error happened alongside what happened.
type AppContextError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Layer     string         `json:"layer,omitempty"`
	Component string         `json:"component,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Cause     error          `json:"-"`
	Context   map[string]any `json:"context,omitempty"`
}

func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode maps error codes to HTTP status codes.
func (e *AppContextError) HTTPStatusCode() int {
	switch e.Code {
	case CodeInvalidAction:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case CodeBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HTTPContextResponse is the JSON error body sent to clients. Layer and
// component details stay in the logs.
type HTTPContextResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppContextError) ToHTTPResponse() HTTPContextResponse {
	return HTTPContextResponse{
		Error:   "error",
		Code:    e.Code,
		Message: e.Message,
	}
}

// IsRetryable reports whether the caller may reasonably try again later.
func (e *AppContextError) IsRetryable() bool {
	switch e.Code {
	case CodeServiceUnavailable, CodeBadGateway:
		return true
	default:
		return false
	}
}

func NewAppContextError(
	code, message, layer, component, operation string,
	cause error,
	context map[string]any,
) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
	}
}

// EnrichWithContext returns a copy of err relocated to the given layer with
// additionalContext merged over the existing context.
func EnrichWithContext(
	err *AppContextError,
	layer, component, operation string,
	additionalContext map[string]any,
) *AppContextError {
	merged := make(map[string]any, len(err.Context)+len(additionalContext))
	for k, v := range err.Context {
		merged[k] = v
	}
	for k, v := range additionalContext {
		merged[k] = v
	}

	return &AppContextError{
		Code:      err.Code,
		Message:   err.Message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     err.Cause,
		Context:   merged,
	}
}
