// Package baseline implements the two one-shot solve functions: a standard
// prompt and a chain-of-thought prompt seeded with starter code. Each call
// renders one fixed template, dispatches one completion request at
// temperature 0, and returns without retry or validation — judging the
// returned code is the caller's job.
package baseline

import (
	"context"

	"github.com/optiforge/orsolve/internal/llm/transport"
	"github.com/optiforge/orsolve/internal/prompt"
)

// Completer dispatches one completion request. Satisfied by llm.Client.
type Completer interface {
	Complete(ctx context.Context, req *transport.Request) (*transport.Response, error)
}

// The template texts are fixed; their placeholder names ({problem},
// {problem_description}, {code_example}) are load-bearing for compatibility
// with the problem sets and the downstream execution harness.
var (
	standardTemplate = prompt.New(
		"You are a Python programmer in the field of operations research and optimization. " +
			"Your proficiency in utilizing third-party libraries such as Gurobi is essential. " +
			"In addition to your expertise in Gurobi, it would be great if you could also provide " +
			"some background in related libraries or tools, like NumPy, SciPy, or PuLP.\n" +
			"You are given a specific problem. You aim to develop an efficient Python program " +
			"that addresses the given problem.\n" +
			"Now the origin problem is as follow:\n{problem}\nGive your Python code directly.")

	chainOfThoughtTemplate = prompt.New(
		"You are a Python programmer in the field of operations research and optimization. " +
			"Your proficiency in utilizing third-party libraries such as Gurobi is essential. " +
			"In addition to your expertise in Gurobi, it would be great if you could also provide " +
			"some background in related libraries or tools, like NumPy, SciPy, or PuLP.\n" +
			"You are given a specific problem. You aim to develop an efficient Python program " +
			"that addresses the given problem.\n" +
			"Now the origin problem is as follow:\n{problem_description}\n" +
			"Let's analyse the problem step by step, and then give your Python code.\n" +
			"Here is a starter code:\n{code_example}")
)

// SolveStandard renders the standard template with the problem text,
// dispatches one completion at temperature 0, and returns the code-extracted
// response. When the response has no fenced block it is returned whole.
func SolveStandard(ctx context.Context, client Completer, provider, model, problem string) (string, error) {
	rendered, err := standardTemplate.Render(map[string]string{"problem": problem})
	if err != nil {
		return "", err
	}

	resp, err := client.Complete(ctx, &transport.Request{
		Provider:    provider,
		Model:       model,
		Prompt:      rendered,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	return prompt.ExtractCode(resp.Content), nil
}

// SolveChainOfThought renders the chain-of-thought template with the problem
// description and starter code, dispatches one completion at temperature 0,
// and returns the raw response including the model's reasoning.
func SolveChainOfThought(ctx context.Context, client Completer, provider, model, problemDescription, codeExample string) (string, error) {
	rendered, err := chainOfThoughtTemplate.Render(map[string]string{
		"problem_description": problemDescription,
		"code_example":        codeExample,
	})
	if err != nil {
		return "", err
	}

	resp, err := client.Complete(ctx, &transport.Request{
		Provider:    provider,
		Model:       model,
		Prompt:      rendered,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
