package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// ServerErrorStatusThreshold is the HTTP status code floor for server errors.
const ServerErrorStatusThreshold = 500

// Classify determines ErrorType from an HTTP status and a provider error
// code. Provider codes take precedence over status codes because several
// providers return specific codes under generic statuses.
func Classify(statusCode int, errorCode string) ErrorType {
	lowerCode := strings.ToLower(errorCode)
	switch {
	case strings.Contains(lowerCode, "rate") || strings.Contains(lowerCode, "limit"):
		return ErrorTypeRateLimit
	case strings.Contains(lowerCode, "timeout"):
		return ErrorTypeTimeout
	case strings.Contains(lowerCode, "auth") || strings.Contains(lowerCode, "unauthorized"):
		return ErrorTypeAuth
	case strings.Contains(lowerCode, "permission") || strings.Contains(lowerCode, "forbidden"):
		return ErrorTypePermission
	case strings.Contains(lowerCode, "quota"):
		return ErrorTypeQuota
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case http.StatusUnauthorized:
		return ErrorTypeAuth
	case http.StatusForbidden:
		return ErrorTypePermission
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	case http.StatusBadRequest:
		return ErrorTypeValidation
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return ErrorTypeProvider
	default:
		if statusCode >= ServerErrorStatusThreshold {
			return ErrorTypeProvider
		}
		return ErrorTypeUnknown
	}
}

// WrapTransport converts a transport-level failure (connection refused, DNS,
// context deadline) into a *BackendError with a classified type.
func WrapTransport(provider string, err error) *BackendError {
	errType := ErrorTypeNetwork
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		errType = ErrorTypeTimeout
	case isTimeout(err):
		errType = ErrorTypeTimeout
	}

	return &BackendError{
		Provider: provider,
		Message:  err.Error(),
		Type:     errType,
		Err:      err,
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
