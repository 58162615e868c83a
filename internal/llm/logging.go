package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	llmerrors "github.com/optiforge/orsolve/internal/llm/errors"
	"github.com/optiforge/orsolve/internal/llm/transport"
)

// Metrics collects observability data for completion calls. Tags carry
// provider/model dimensions.
type Metrics interface {
	IncrementCounter(name string, tags map[string]string, value float64)
	RecordHistogram(name string, tags map[string]string, value float64)
}

// NoOpMetrics satisfies Metrics without collecting anything.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a metrics collector that discards all data.
func NewNoOpMetrics() *NoOpMetrics { return &NoOpMetrics{} }

func (n *NoOpMetrics) IncrementCounter(_ string, _ map[string]string, _ float64) {}

func (n *NoOpMetrics) RecordHistogram(_ string, _ map[string]string, _ float64) {}

// LoggingMiddleware logs the lifecycle of every completion call: request
// dispatch, latency, token usage, and classified failures. It assigns a
// request ID when the caller did not supply a trace ID.
type LoggingMiddleware struct {
	logger  *slog.Logger
	metrics Metrics
	config  ObservabilityConfig
}

// NewLoggingMiddleware creates the observability middleware. A nil logger
// falls back to slog.Default, a nil metrics to NoOpMetrics.
func NewLoggingMiddleware(config ObservabilityConfig, logger *slog.Logger, metrics Metrics) transport.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewNoOpMetrics()
	}

	lm := &LoggingMiddleware{logger: logger, metrics: metrics, config: config}
	return lm.Middleware
}

// Middleware wraps a handler with request/response logging.
func (m *LoggingMiddleware) Middleware(next transport.Handler) transport.Handler {
	return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		requestID := req.TraceID
		if requestID == "" {
			requestID = uuid.New().String()
		}

		tags := map[string]string{"provider": req.Provider, "model": req.Model}

		m.logRequest(req, requestID)
		m.metrics.IncrementCounter("llm.requests.total", tags, 1)

		start := time.Now()
		resp, err := next.Handle(ctx, req)
		duration := time.Since(start)

		m.metrics.RecordHistogram("llm.request.duration_ms", tags, float64(duration.Milliseconds()))

		if err != nil {
			m.logError(req, err, requestID, duration)
			m.metrics.IncrementCounter("llm.requests.errors", tags, 1)
		} else if resp != nil {
			m.logSuccess(req, resp, requestID, duration)
			m.metrics.IncrementCounter("llm.requests.success", tags, 1)
			m.metrics.RecordHistogram("llm.tokens.total", tags, float64(resp.Usage.TotalTokens))
		}

		return resp, err
	})
}

func (m *LoggingMiddleware) logRequest(req *transport.Request, requestID string) {
	fields := []any{
		"request_id", requestID,
		"provider", req.Provider,
		"model", req.Model,
		"temperature", req.Temperature,
		"max_tokens", req.MaxTokens,
	}

	if m.config.RedactPrompts {
		fields = append(fields, "prompt_length", len(req.Prompt))
	} else {
		fields = append(fields, "prompt", req.Prompt)
	}

	m.logger.Info("completion request started", fields...)
}

func (m *LoggingMiddleware) logError(req *transport.Request, err error, requestID string, duration time.Duration) {
	errorType := llmerrors.ErrorTypeUnknown
	var be *llmerrors.BackendError
	if errors.As(err, &be) {
		errorType = be.Type
	}

	m.logger.Error("completion request failed",
		"request_id", requestID,
		"provider", req.Provider,
		"model", req.Model,
		"duration_ms", duration.Milliseconds(),
		"error_type", string(errorType),
		"error", err.Error(),
	)
}

func (m *LoggingMiddleware) logSuccess(req *transport.Request, resp *transport.Response, requestID string, duration time.Duration) {
	fields := []any{
		"request_id", requestID,
		"provider", req.Provider,
		"model", req.Model,
		"duration_ms", duration.Milliseconds(),
		"finish_reason", string(resp.FinishReason),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	}

	if m.config.LogResponses {
		fields = append(fields, "response", resp.Content)
	} else {
		fields = append(fields, "response_length", len(resp.Content))
	}

	m.logger.Info("completion request succeeded", fields...)
}
