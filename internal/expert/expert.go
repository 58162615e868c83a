// Package expert implements the prompting unit the solve pipelines are built
// from: a named persona bound to a forward task template and, optionally, a
// backward task template. An expert is data — two template strings and a
// model binding — not behavior; all experts share one control flow.
package expert

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/optiforge/orsolve/internal/llm/transport"
	"github.com/optiforge/orsolve/internal/prompt"
)

// validate is the package-level validator instance used for config validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Completer dispatches one completion request. Satisfied by llm.Client.
type Completer interface {
	Complete(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

// Config declares an expert. RoleDescription and ForwardTask are required;
// BackwardTask is optional and enables the Backward capability.
type Config struct {
	// Name identifies the expert within a session.
	Name string `validate:"required"`

	// Description is a human-readable summary, used for logging only.
	Description string

	// Provider and Model bind the expert's pipelines to one completion
	// backend. There are no defaults: explicit bindings keep runs
	// reproducible.
	Provider string `validate:"required"`
	Model    string `validate:"required"`

	// RoleDescription is the persona framing prepended to every task.
	RoleDescription string `validate:"required"`

	// ForwardTask is the primary task template.
	ForwardTask string `validate:"required"`

	// BackwardTask is the optional feedback/reflection task template.
	BackwardTask string

	// MaxTokens caps completions; zero uses transport.DefaultMaxTokens.
	MaxTokens int
}

// Expert is an immutable prompting unit. Rebuilding with different templates
// means constructing a new Expert.
type Expert struct {
	name        string
	description string
	client      Completer
	forward     pipeline
	backward    *pipeline
}

// New validates cfg, compiles the pipelines, and returns the expert.
// Missing required fields fail with *ConfigurationError.
func New(client Completer, cfg Config) (*Expert, error) {
	if client == nil {
		return nil, &ConfigurationError{Field: "client", Reason: "is required"}
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &ConfigurationError{Field: verrs[0].Field(), Reason: "is required"}
		}
		return nil, err
	}

	e := &Expert{
		name:        cfg.Name,
		description: cfg.Description,
		client:      client,
		forward:     compile(cfg, cfg.ForwardTask),
	}
	if cfg.BackwardTask != "" {
		backward := compile(cfg, cfg.BackwardTask)
		e.backward = &backward
	}
	return e, nil
}

// Name returns the expert's identifier.
func (e *Expert) Name() string { return e.name }

// CanBackward reports whether a backward pipeline was configured.
func (e *Expert) CanBackward() bool { return e.backward != nil }

// Forward renders the forward pipeline with inputs and dispatches one
// completion call at temperature 0, returning the raw response text.
func (e *Expert) Forward(ctx context.Context, inputs map[string]string) (string, error) {
	return e.forward.run(ctx, e.client, inputs)
}

// Backward renders the backward pipeline with inputs and dispatches one
// completion call at temperature 0. Returns *CapabilityError when the expert
// was constructed without a backward task.
func (e *Expert) Backward(ctx context.Context, inputs map[string]string) (string, error) {
	if e.backward == nil {
		return "", &CapabilityError{Name: e.name, Capability: "backward"}
	}
	return e.backward.run(ctx, e.client, inputs)
}

// String identifies the expert in logs.
func (e *Expert) String() string {
	return fmt.Sprintf("%s: %s", e.name, e.description)
}

// pipeline is a compiled prompt pipeline: the role description concatenated
// with one task template, bound to a provider/model at temperature 0.
// Pipelines are immutable once built.
type pipeline struct {
	template  prompt.Template
	provider  string
	model     string
	maxTokens int
}

func compile(cfg Config, task string) pipeline {
	return pipeline{
		template:  prompt.New(cfg.RoleDescription + "\n" + task),
		provider:  cfg.Provider,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (p pipeline) run(ctx context.Context, client Completer, inputs map[string]string) (string, error) {
	rendered, err := p.template.Render(inputs)
	if err != nil {
		return "", err
	}

	resp, err := client.Complete(ctx, &transport.Request{
		Provider:    p.provider,
		Model:       p.model,
		Prompt:      rendered,
		Temperature: 0,
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
