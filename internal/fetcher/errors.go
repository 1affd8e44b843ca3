package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error that occurred while talking to
// the market site or the messaging API.
type ErrorType string

const (
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, proxy, etc.)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit indicates the request was rejected due to rate limiting (HTTP 429)
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeServer indicates a server error (HTTP 5xx)
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeClient indicates a client error (HTTP 4xx except 429)
	ErrorTypeClient ErrorType = "client"
	// ErrorTypeValidation indicates a response arrived but its content is unusable
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeTimeout indicates the request timed out or was cancelled
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeUnknown indicates an error of unknown type
	ErrorTypeUnknown ErrorType = "unknown"
)

// FetchError is a structured error from a remote call.
type FetchError struct {
	Type       ErrorType
	Retryable  bool
	StatusCode int
	Message    string
	Cause      error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *FetchError {
	return &FetchError{
		Type:      ErrorTypeNetwork,
		Retryable: true,
		Message:   "request failed",
		Cause:     cause,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *FetchError {
	return &FetchError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(cause error) *FetchError {
	return &FetchError{
		Type:      ErrorTypeTimeout,
		Retryable: true,
		Message:   "request timed out",
		Cause:     cause,
	}
}

// FromTransport classifies an error returned before any response was read.
func FromTransport(ctx context.Context, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return NewTimeoutError(err)
	}
	return NewNetworkError(err)
}

// ClassifyHTTPError classifies a non-success HTTP status code.
func ClassifyHTTPError(statusCode int) *FetchError {
	text := http.StatusText(statusCode)
	switch {
	case statusCode == http.StatusTooManyRequests:
		return &FetchError{Type: ErrorTypeRateLimit, Retryable: true, StatusCode: statusCode, Message: "rate limit exceeded"}
	case statusCode == http.StatusRequestTimeout:
		return &FetchError{Type: ErrorTypeTimeout, Retryable: true, StatusCode: statusCode, Message: text}
	case statusCode >= 500:
		return &FetchError{Type: ErrorTypeServer, Retryable: true, StatusCode: statusCode, Message: "server returned an error"}
	case statusCode >= 400:
		return &FetchError{Type: ErrorTypeClient, StatusCode: statusCode, Message: fmt.Sprintf("client error: HTTP %d", statusCode)}
	default:
		return &FetchError{Type: ErrorTypeUnknown, StatusCode: statusCode, Message: fmt.Sprintf("unexpected status code: %d", statusCode)}
	}
}

// IsRetryable reports whether err is a FetchError that may succeed on a later attempt.
func IsRetryable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Retryable
}
