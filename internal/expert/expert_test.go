package expert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmerrors "github.com/optiforge/orsolve/internal/llm/errors"
	"github.com/optiforge/orsolve/internal/llm/transport"
	"github.com/optiforge/orsolve/internal/prompt"
)

// stubCompleter records requests and replies with canned content.
type stubCompleter struct {
	requests []*transport.Request
	replies  []string
	err      error
}

func (s *stubCompleter) Complete(_ context.Context, req *transport.Request) (*transport.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	reply := "ok"
	if len(s.replies) > 0 {
		reply = s.replies[0]
		if len(s.replies) > 1 {
			s.replies = s.replies[1:]
		}
	}
	return &transport.Response{Content: reply, FinishReason: transport.FinishStop}, nil
}

func validConfig() Config {
	return Config{
		Name:            "test_expert",
		Description:     "a test expert",
		Provider:        "openai",
		Model:           "gpt-4o",
		RoleDescription: "You are a test persona.",
		ForwardTask:     "Solve: {problem}",
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"missing_role_description", func(c *Config) { c.RoleDescription = "" }, "RoleDescription"},
		{"missing_forward_task", func(c *Config) { c.ForwardTask = "" }, "ForwardTask"},
		{"missing_name", func(c *Config) { c.Name = "" }, "Name"},
		{"missing_model", func(c *Config) { c.Model = "" }, "Model"},
		{"missing_provider", func(c *Config) { c.Provider = "" }, "Provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := New(&stubCompleter{}, cfg)
			var cerr *ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.wantField, cerr.Field)
		})
	}
}

func TestNew_NilClient(t *testing.T) {
	_, err := New(nil, validConfig())
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "client", cerr.Field)
}

func TestExpert_Forward(t *testing.T) {
	stub := &stubCompleter{replies: []string{"the answer"}}
	e, err := New(stub, validConfig())
	require.NoError(t, err)

	out, err := e.Forward(context.Background(), map[string]string{"problem": "maximize x+y"})
	require.NoError(t, err)
	assert.Equal(t, "the answer", out)

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	assert.Equal(t, "openai", req.Provider)
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Zero(t, req.Temperature)
	assert.Equal(t, "You are a test persona.\nSolve: maximize x+y", req.Prompt)
}

func TestExpert_ForwardTemplateError(t *testing.T) {
	stub := &stubCompleter{}
	e, err := New(stub, validConfig())
	require.NoError(t, err)

	_, err = e.Forward(context.Background(), map[string]string{})
	var terr *prompt.TemplateError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, []string{"problem"}, terr.Missing)
	assert.Empty(t, stub.requests, "no request may be dispatched on render failure")
}

func TestExpert_ForwardBackendError(t *testing.T) {
	wantErr := &llmerrors.BackendError{Provider: "openai", Type: llmerrors.ErrorTypeNetwork, Message: "down"}
	e, err := New(&stubCompleter{err: wantErr}, validConfig())
	require.NoError(t, err)

	_, err = e.Forward(context.Background(), map[string]string{"problem": "p"})
	var be *llmerrors.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, llmerrors.ErrorTypeNetwork, be.Type)
}

func TestExpert_BackwardWithoutTask(t *testing.T) {
	e, err := New(&stubCompleter{}, validConfig())
	require.NoError(t, err)
	assert.False(t, e.CanBackward())

	_, err = e.Backward(context.Background(), map[string]string{"problem": "p"})
	var cerr *CapabilityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "test_expert", cerr.Name)
	assert.Equal(t, "backward", cerr.Capability)
}

func TestExpert_BackwardWithTask(t *testing.T) {
	cfg := validConfig()
	cfg.BackwardTask = "Revise given feedback: {feedback}"

	stub := &stubCompleter{replies: []string{"revised"}}
	e, err := New(stub, cfg)
	require.NoError(t, err)
	assert.True(t, e.CanBackward())

	out, err := e.Backward(context.Background(), map[string]string{"feedback": "wrong sign"})
	require.NoError(t, err)
	assert.Equal(t, "revised", out)
	require.Len(t, stub.requests, 1)
	assert.Equal(t, "You are a test persona.\nRevise given feedback: wrong sign", stub.requests[0].Prompt)
}

func TestExpert_String(t *testing.T) {
	e, err := New(&stubCompleter{}, validConfig())
	require.NoError(t, err)
	assert.Equal(t, "test_expert: a test expert", e.String())
}

func TestCatalogExperts(t *testing.T) {
	stub := &stubCompleter{}

	modeling, err := NewModelingExpert(stub, "openai", "gpt-4o")
	require.NoError(t, err)
	assert.True(t, modeling.CanBackward())

	programming, err := NewProgrammingExpert(stub, "openai", "gpt-4o")
	require.NoError(t, err)
	assert.True(t, programming.CanBackward())

	review, err := NewCodeReviewExpert(stub, "openai", "gpt-4o")
	require.NoError(t, err)
	assert.False(t, review.CanBackward())

	_, err = review.Backward(context.Background(), nil)
	var cerr *CapabilityError
	assert.ErrorAs(t, err, &cerr)
}
