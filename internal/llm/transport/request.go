// Package transport defines the normalized completion request and response
// types and the composable handler chain the completion client is built on.
package transport

import (
	"net/http"
	"time"
)

// DefaultMaxTokens bounds completion length when a caller does not set one.
const DefaultMaxTokens = 4096

// Request is a normalized, provider-agnostic completion request. The prompt
// is a single fully rendered string; persona framing is part of the prompt
// text, not a separate system message.
type Request struct {
	// Provider selects the adapter ("openai", "anthropic", "google").
	Provider string

	// Model is the provider-specific model identifier.
	Model string

	// Prompt is the fully rendered prompt text.
	Prompt string

	// Temperature is the sampling temperature. Solve pipelines always
	// dispatch at 0 for deterministic greedy decoding.
	Temperature float64

	// MaxTokens caps the completion length. Zero means DefaultMaxTokens.
	MaxTokens int

	// TraceID correlates log lines for one logical solve attempt.
	TraceID string

	// Timeout bounds this request; zero inherits the HTTP client timeout.
	Timeout time.Duration
}

// FinishReason is the normalized reason a completion stopped.
type FinishReason string

const (
	// FinishStop indicates natural completion.
	FinishStop FinishReason = "stop"

	// FinishLength indicates the token limit was reached.
	FinishLength FinishReason = "length"

	// FinishContentFilter indicates provider safety filtering.
	FinishContentFilter FinishReason = "content_filter"
)

// Usage captures normalized token accounting for one completion call.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
	LatencyMs        int64
}

// Response is a normalized completion response.
type Response struct {
	// Content is the raw completion text.
	Content string

	// FinishReason is the normalized stop reason.
	FinishReason FinishReason

	// ProviderRequestIDs holds provider-assigned request identifiers for
	// support escalation.
	ProviderRequestIDs []string

	// Usage carries token counts and latency.
	Usage Usage

	// Headers and RawBody keep the wire response available for debugging.
	Headers http.Header
	RawBody []byte
}
