package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/optiforge/orsolve/internal/llm/errors"
	"github.com/optiforge/orsolve/internal/llm/transport"
)

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestNewOpenAIAdapter(t *testing.T) {
	tests := []struct {
		name             string
		config           Config
		expectedEndpoint string
	}{
		{
			name:             "default_endpoint_when_empty",
			config:           Config{APIKey: "test-key"},
			expectedEndpoint: "https://api.openai.com/v1",
		},
		{
			name:             "custom_endpoint_preserved",
			config:           Config{APIKey: "test-key", Endpoint: "https://custom.openai.com/v1"},
			expectedEndpoint: "https://custom.openai.com/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewOpenAIAdapter(tt.config)
			assert.Equal(t, ProviderOpenAI, adapter.Name())
			assert.Equal(t, tt.expectedEndpoint, adapter.config.Endpoint)
		})
	}
}

func TestOpenAIAdapter_Build(t *testing.T) {
	adapter := NewOpenAIAdapter(Config{
		APIKey:   "test-key",
		Endpoint: "https://api.openai.com/v1",
		Headers:  map[string]string{"X-Custom-Header": "custom-value"},
	})

	req := &transport.Request{
		Provider:    "openai",
		Model:       "gpt-4o",
		Prompt:      "Maximize x+y subject to x<=1, y<=1.",
		Temperature: 0,
		MaxTokens:   128,
	}

	httpReq, err := adapter.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, httpReq.Method)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", httpReq.URL.String())
	assert.Equal(t, "application/json", httpReq.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer test-key", httpReq.Header.Get("Authorization"))
	assert.Equal(t, "custom-value", httpReq.Header.Get("X-Custom-Header"))

	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
	}
	require.NoError(t, json.NewDecoder(httpReq.Body).Decode(&body))
	assert.Equal(t, "gpt-4o", body.Model)
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "user", body.Messages[0].Role)
	assert.Equal(t, req.Prompt, body.Messages[0].Content)
	assert.Equal(t, 128, body.MaxTokens)
	assert.Zero(t, body.Temperature)
}

func TestOpenAIAdapter_BuildDefaultsMaxTokens(t *testing.T) {
	adapter := NewOpenAIAdapter(Config{APIKey: "k"})

	httpReq, err := adapter.Build(context.Background(), &transport.Request{
		Model:  "gpt-4o",
		Prompt: "p",
	})
	require.NoError(t, err)

	var body struct {
		MaxTokens int `json:"max_tokens"`
	}
	require.NoError(t, json.NewDecoder(httpReq.Body).Decode(&body))
	assert.Equal(t, transport.DefaultMaxTokens, body.MaxTokens)
}

func TestOpenAIAdapter_Parse(t *testing.T) {
	adapter := NewOpenAIAdapter(Config{APIKey: "k"})

	t.Run("success", func(t *testing.T) {
		resp := httpResponse(http.StatusOK, `{
			"id": "chatcmpl-1",
			"model": "gpt-4o",
			"choices": [{"message": {"role": "assistant", "content": "answer"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`)
		resp.Header.Set("x-request-id", "req-123")

		parsed, err := adapter.Parse(resp)
		require.NoError(t, err)
		assert.Equal(t, "answer", parsed.Content)
		assert.Equal(t, transport.FinishStop, parsed.FinishReason)
		assert.Equal(t, int64(10), parsed.Usage.PromptTokens)
		assert.Equal(t, int64(5), parsed.Usage.CompletionTokens)
		assert.Equal(t, int64(15), parsed.Usage.TotalTokens)
		assert.Equal(t, []string{"req-123"}, parsed.ProviderRequestIDs)
	})

	t.Run("length_finish_reason", func(t *testing.T) {
		resp := httpResponse(http.StatusOK, `{
			"choices": [{"message": {"content": "truncated"}, "finish_reason": "length"}],
			"usage": {}
		}`)

		parsed, err := adapter.Parse(resp)
		require.NoError(t, err)
		assert.Equal(t, transport.FinishLength, parsed.FinishReason)
	})

	t.Run("structured_error", func(t *testing.T) {
		resp := httpResponse(http.StatusTooManyRequests,
			`{"error": {"message": "slow down", "type": "rate_limit_error", "code": "rate_limit_exceeded"}}`)

		_, err := adapter.Parse(resp)
		var be *llmerrors.BackendError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, ProviderOpenAI, be.Provider)
		assert.Equal(t, http.StatusTooManyRequests, be.StatusCode)
		assert.Equal(t, "slow down", be.Message)
		assert.Equal(t, llmerrors.ErrorTypeRateLimit, be.Type)
	})

	t.Run("unstructured_error_body", func(t *testing.T) {
		resp := httpResponse(http.StatusBadGateway, "upstream exploded")

		_, err := adapter.Parse(resp)
		var be *llmerrors.BackendError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "upstream exploded", be.Message)
		assert.Equal(t, llmerrors.ErrorTypeProvider, be.Type)
	})

	t.Run("malformed_success_body", func(t *testing.T) {
		resp := httpResponse(http.StatusOK, "not json")

		_, err := adapter.Parse(resp)
		assert.ErrorIs(t, err, llmerrors.ErrInvalidResponse)
	})
}
