// Package errors defines the error taxonomy for completion backend failures.
// Every network or service failure surfaces as (or wraps) a *BackendError so
// callers can classify what went wrong without provider-specific knowledge.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType categorizes completion backend failures. The harness never
// retries; the classification exists for logging and for callers that batch
// problems and want to distinguish transient from permanent failures when
// deciding what to re-run by hand.
type ErrorType string

const (
	// ErrorTypeTimeout indicates a request timeout or deadline exceeded.
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeRateLimit indicates the provider rejected the request for rate limiting.
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeNetwork indicates the provider was unreachable.
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeProvider indicates a provider-side service failure (5xx).
	ErrorTypeProvider ErrorType = "provider_unavailable"

	// ErrorTypeValidation indicates the provider rejected the request as malformed.
	ErrorTypeValidation ErrorType = "validation_failed"

	// ErrorTypeAuth indicates authentication failed.
	ErrorTypeAuth ErrorType = "authentication"

	// ErrorTypePermission indicates insufficient permissions.
	ErrorTypePermission ErrorType = "permission_denied"

	// ErrorTypeQuota indicates account quota exhaustion.
	ErrorTypeQuota ErrorType = "quota_exceeded"

	// ErrorTypeUnknown indicates an unclassified failure.
	ErrorTypeUnknown ErrorType = "unknown"
)

// Common completion backend errors.
var (
	// ErrUnknownProvider indicates a provider name with no configured adapter.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidResponse indicates the provider returned a response the
	// adapter could not interpret.
	ErrInvalidResponse = errors.New("invalid provider response")

	// ErrEmptyCompletion indicates the provider returned no completion text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// BackendError captures a structured failure from the completion backend:
// either a provider error response (carrying the HTTP status and the
// provider's error code) or a transport-level failure (carrying the wrapped
// network error and a zero status).
type BackendError struct {
	Provider   string    `json:"provider"`    // Provider name
	StatusCode int       `json:"status_code"` // HTTP status code, 0 for transport failures
	Message    string    `json:"message"`     // Error message
	Code       string    `json:"code"`        // Provider error code, if any
	Type       ErrorType `json:"type"`        // Classified error type
	Err        error     `json:"-"`           // Underlying error, if any
}

// Error returns the formatted backend error with status context when present.
func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s backend error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s backend error: %s", e.Provider, e.Message)
}

// Unwrap exposes the underlying transport error for errors.Is/As chains.
func (e *BackendError) Unwrap() error { return e.Err }
