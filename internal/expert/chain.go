package expert

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
)

// ErrEmptyChain indicates a chain was constructed with no experts.
var ErrEmptyChain = errors.New("chain requires at least one expert")

// StepResult records one expert's contribution to a chain run.
type StepResult struct {
	Expert string
	Output string
}

// Chain runs experts strictly in sequence, one blocking completion call at a
// time. Each expert receives the original inputs plus a "comments"
// placeholder holding all previous experts' outputs. The final expert's
// output is the chain's answer.
type Chain struct {
	experts []*Expert
}

// NewChain builds a chain over the given experts, in order.
func NewChain(experts ...*Expert) (*Chain, error) {
	if len(experts) == 0 {
		return nil, ErrEmptyChain
	}
	return &Chain{experts: experts}, nil
}

// Run executes the forward pass. Any expert failure aborts the run and
// surfaces to the caller; partial step results accompany the error so the
// caller can log how far the chain got.
func (c *Chain) Run(ctx context.Context, inputs map[string]string) ([]StepResult, error) {
	steps := make([]StepResult, 0, len(c.experts))
	var pool []string

	for _, e := range c.experts {
		in := make(map[string]string, len(inputs)+1)
		maps.Copy(in, inputs)
		in["comments"] = strings.Join(pool, "\n\n")

		out, err := e.Forward(ctx, in)
		if err != nil {
			return steps, fmt.Errorf("expert %q failed: %w", e.Name(), err)
		}

		steps = append(steps, StepResult{Expert: e.Name(), Output: out})
		pool = append(pool, fmt.Sprintf("[%s]\n%s", e.Name(), out))
	}

	return steps, nil
}

// Final returns the last step's output, or the empty string for no steps.
func Final(steps []StepResult) string {
	if len(steps) == 0 {
		return ""
	}
	return steps[len(steps)-1].Output
}
