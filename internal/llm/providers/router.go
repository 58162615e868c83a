// Package providers implements the HTTP adapters for each supported
// completion backend. Each adapter translates the normalized transport
// request into the provider's wire format and parses the reply back.
package providers

import (
	"context"
	"fmt"
	"net/http"

	llmerrors "github.com/optiforge/orsolve/internal/llm/errors"
	"github.com/optiforge/orsolve/internal/llm/transport"
)

// Supported completion provider identifiers. These constants must match the
// provider names used in configuration.
const (
	ProviderOpenAI    = "openai"    // OpenAI GPT models
	ProviderAnthropic = "anthropic" // Anthropic Claude models
	ProviderGoogle    = "google"    // Google Gemini models
)

// Adapter abstracts provider-specific HTTP communication. Each provider
// implements this interface to handle its API format, authentication scheme,
// and response structure.
type Adapter interface {
	// Build constructs a provider-specific HTTP request from a normalized
	// completion request.
	Build(ctx context.Context, req *transport.Request) (*http.Request, error)

	// Parse extracts a normalized response from the provider's HTTP reply.
	// Non-2xx replies are returned as *llmerrors.BackendError.
	Parse(httpResp *http.Response) (*transport.Response, error)

	// Name returns the canonical provider identifier.
	Name() string
}

// Config holds per-provider endpoint and authentication settings.
type Config struct {
	Endpoint  string            `yaml:"endpoint"`
	APIKey    string            `yaml:"-"` // Sensitive, never serialized
	APIKeyEnv string            `yaml:"api_key_env"`
	Headers   map[string]string `yaml:"headers"`
}

// Router selects the adapter for a provider name.
type Router interface {
	Pick(provider string) (Adapter, error)
}

// NewRouter creates a router with an adapter per configured provider.
// Unknown provider names fail construction rather than first use.
func NewRouter(configs map[string]Config) (Router, error) {
	adapters := make(map[string]Adapter, len(configs))

	for name, cfg := range configs {
		switch name {
		case ProviderOpenAI:
			adapters[name] = NewOpenAIAdapter(cfg)
		case ProviderAnthropic:
			adapters[name] = NewAnthropicAdapter(cfg)
		case ProviderGoogle:
			adapters[name] = NewGoogleAdapter(cfg)
		default:
			return nil, fmt.Errorf("%w: %s", llmerrors.ErrUnknownProvider, name)
		}
	}

	return &router{adapters: adapters}, nil
}

type router struct {
	adapters map[string]Adapter
}

// Pick returns the adapter registered for provider.
func (r *router) Pick(provider string) (Adapter, error) {
	adapter, ok := r.adapters[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", llmerrors.ErrUnknownProvider, provider)
	}
	return adapter, nil
}
