// Package llm provides the synchronous completion client the solve pipelines
// dispatch through. One Complete call is exactly one blocking HTTP
// round-trip: there is no retry, caching, batching, or concurrency inside
// the client, because a failed completion aborts the solve attempt and the
// batch caller decides what to skip.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	llmerrors "github.com/optiforge/orsolve/internal/llm/errors"
	"github.com/optiforge/orsolve/internal/llm/providers"
	"github.com/optiforge/orsolve/internal/llm/transport"
)

// Client dispatches normalized completion requests to a configured provider.
// Implementations are safe for sequential reuse; concurrent use inherits
// whatever safety the underlying http.Client provides.
type Client interface {
	Complete(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

type client struct {
	handler transport.Handler
}

// New builds a Client from cfg. API keys are resolved from the environment,
// the provider router is constructed eagerly so unknown providers fail here,
// and the logging middleware is installed around the HTTP core.
func New(cfg *Config, logger *slog.Logger) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.ResolveAPIKeys()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	router, err := providers.NewRouter(cfg.Providers)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout == 0 {
			timeout = DefaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	core := &httpHandler{client: httpClient, router: router}
	handler := transport.Chain(core, NewLoggingMiddleware(cfg.Observability, logger, nil))

	return &client{handler: handler}, nil
}

// Complete implements Client.
func (c *client) Complete(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	return c.handler.Handle(ctx, req)
}

// httpHandler is the core handler performing the provider round-trip.
type httpHandler struct {
	client *http.Client
	router providers.Router
}

// Handle picks the provider adapter, executes one blocking HTTP request, and
// normalizes both the response and any failure into the backend error
// taxonomy.
func (h *httpHandler) Handle(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	adapter, err := h.router.Pick(req.Provider)
	if err != nil {
		return nil, err
	}

	reqCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := adapter.Build(reqCtx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	httpResp, err := h.client.Do(httpReq)
	latency := time.Since(start)

	if err != nil {
		return nil, llmerrors.WrapTransport(adapter.Name(), err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	resp, err := adapter.Parse(httpResp)
	if err != nil {
		return nil, err
	}

	resp.Usage.LatencyMs = latency.Milliseconds()

	if resp.Content == "" {
		return nil, &llmerrors.BackendError{
			Provider: adapter.Name(),
			Message:  llmerrors.ErrEmptyCompletion.Error(),
			Type:     llmerrors.ErrorTypeValidation,
			Err:      llmerrors.ErrEmptyCompletion,
		}
	}

	return resp, nil
}
