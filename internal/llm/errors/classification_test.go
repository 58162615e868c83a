package errors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		errorCode  string
		want       ErrorType
	}{
		{"rate_limit_from_code", http.StatusOK, "rate_limit_exceeded", ErrorTypeRateLimit},
		{"timeout_from_code", http.StatusOK, "request_timeout", ErrorTypeTimeout},
		{"auth_from_code", http.StatusOK, "invalid_auth", ErrorTypeAuth},
		{"permission_from_code", http.StatusOK, "permission_denied", ErrorTypePermission},
		{"quota_from_code", http.StatusOK, "quota_exceeded", ErrorTypeQuota},
		{"rate_limit_from_status", http.StatusTooManyRequests, "", ErrorTypeRateLimit},
		{"auth_from_status", http.StatusUnauthorized, "", ErrorTypeAuth},
		{"permission_from_status", http.StatusForbidden, "", ErrorTypePermission},
		{"timeout_from_status", http.StatusGatewayTimeout, "", ErrorTypeTimeout},
		{"validation_from_status", http.StatusBadRequest, "", ErrorTypeValidation},
		{"provider_from_status", http.StatusServiceUnavailable, "", ErrorTypeProvider},
		{"provider_from_unusual_5xx", 599, "", ErrorTypeProvider},
		{"unknown_otherwise", http.StatusNotFound, "", ErrorTypeUnknown},
		{"code_takes_precedence_over_status", http.StatusInternalServerError, "rate_limited", ErrorTypeRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.statusCode, tt.errorCode))
		})
	}
}

func TestWrapTransport(t *testing.T) {
	t.Run("network_error", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		be := WrapTransport("openai", cause)

		assert.Equal(t, "openai", be.Provider)
		assert.Equal(t, ErrorTypeNetwork, be.Type)
		assert.Zero(t, be.StatusCode)
		assert.ErrorIs(t, be, cause)
	})

	t.Run("deadline_exceeded_classified_as_timeout", func(t *testing.T) {
		be := WrapTransport("anthropic", context.DeadlineExceeded)
		assert.Equal(t, ErrorTypeTimeout, be.Type)
	})
}

func TestBackendError_Error(t *testing.T) {
	withStatus := &BackendError{Provider: "openai", StatusCode: 429, Message: "slow down"}
	assert.Equal(t, "openai backend error (status 429): slow down", withStatus.Error())

	withoutStatus := &BackendError{Provider: "google", Message: "no route to host"}
	assert.Equal(t, "google backend error: no route to host", withoutStatus.Error())
}

func TestBackendError_UnwrapChain(t *testing.T) {
	cause := errors.New("boom")
	be := &BackendError{Provider: "openai", Message: "boom", Err: cause}

	var target *BackendError
	require.ErrorAs(t, error(be), &target)
	assert.ErrorIs(t, be, cause)
}
