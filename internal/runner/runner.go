// Package runner drives batch solves over a problem set: one problem at a
// time, one blocking completion chain per problem, writing each generated
// snippet to a per-run log directory. Failures are logged and skipped so a
// bad problem never aborts the run.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/optiforge/orsolve/internal/baseline"
	"github.com/optiforge/orsolve/internal/expert"
	"github.com/optiforge/orsolve/internal/problems"
	"github.com/optiforge/orsolve/internal/prompt"
)

// Mode selects how each problem is solved.
type Mode string

const (
	// ModeStandard is the one-shot standard baseline.
	ModeStandard Mode = "standard"

	// ModeChainOfThought is the one-shot baseline seeded with starter code.
	ModeChainOfThought Mode = "cot"

	// ModeExperts runs the modeling and programming experts in sequence.
	ModeExperts Mode = "coe"
)

// ParseMode validates a mode string from configuration or flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStandard, ModeChainOfThought, ModeExperts:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want standard, cot, or coe)", s)
	}
}

// Options configures a Runner.
type Options struct {
	Provider  string
	Model     string
	Mode      Mode
	OutputDir string
	Logger    *slog.Logger
}

// Summary reports the outcome of one batch run.
type Summary struct {
	Dir       string
	Total     int
	Succeeded int
	Failed    int
}

// Runner executes problems sequentially. It holds no mutable state between
// problems beyond the immutable expert chain.
type Runner struct {
	client baseline.Completer
	opts   Options
	chain  *expert.Chain
}

// New builds a runner; for ModeExperts the expert chain is constructed
// eagerly so template misconfiguration fails before any network call.
func New(client baseline.Completer, opts Options) (*Runner, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := &Runner{client: client, opts: opts}

	if opts.Mode == ModeExperts {
		modeling, err := expert.NewModelingExpert(client, opts.Provider, opts.Model)
		if err != nil {
			return nil, err
		}
		programming, err := expert.NewProgrammingExpert(client, opts.Provider, opts.Model)
		if err != nil {
			return nil, err
		}
		chain, err := expert.NewChain(modeling, programming)
		if err != nil {
			return nil, err
		}
		r.chain = chain
	}

	return r, nil
}

// Run solves every problem in repo, writing each generated snippet to
// <output>/run_<mode>_<tag>_<unixtime>/prob_<id>_generated_code.py. A failed
// problem is logged and skipped; only setup errors (creating the run
// directory) or context cancellation abort the run.
func (r *Runner) Run(ctx context.Context, repo *problems.Repo, tag string) (*Summary, error) {
	if tag == "" {
		tag = "set"
	}

	dir := filepath.Join(r.opts.OutputDir,
		fmt.Sprintf("run_%s_%s_%d", r.opts.Mode, tag, time.Now().Unix()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	summary := &Summary{Dir: dir, Total: repo.Len()}
	logger := r.opts.Logger.With("run_dir", dir, "mode", string(r.opts.Mode))

	for _, p := range repo.All() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		code, err := r.solve(ctx, p)
		if err != nil {
			summary.Failed++
			logger.Error("problem solve failed", "problem_id", p.ID, "error", err.Error())
			continue
		}

		path := filepath.Join(dir, "prob_"+strconv.Itoa(p.ID)+"_generated_code.py")
		if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
			summary.Failed++
			logger.Error("snippet write failed", "problem_id", p.ID, "error", err.Error())
			continue
		}

		summary.Succeeded++
		logger.Info("problem solved", "problem_id", p.ID, "snippet", path)
	}

	return summary, nil
}

// Solve runs one problem through the configured mode and returns the
// extracted Python code.
func (r *Runner) Solve(ctx context.Context, p problems.Problem) (string, error) {
	return r.solve(ctx, p)
}

func (r *Runner) solve(ctx context.Context, p problems.Problem) (string, error) {
	switch r.opts.Mode {
	case ModeStandard:
		// Already code-extracted by the baseline.
		return baseline.SolveStandard(ctx, r.client, r.opts.Provider, r.opts.Model, p.Description)

	case ModeChainOfThought:
		answer, err := baseline.SolveChainOfThought(ctx,
			r.client, r.opts.Provider, r.opts.Model, p.Description, p.CodeExample)
		if err != nil {
			return "", err
		}
		return prompt.ExtractCode(answer), nil

	case ModeExperts:
		steps, err := r.chain.Run(ctx, map[string]string{
			"problem_description": p.Description,
			"code_example":        p.CodeExample,
		})
		if err != nil {
			return "", err
		}
		return prompt.ExtractCode(expert.Final(steps)), nil

	default:
		return "", fmt.Errorf("unknown mode %q", r.opts.Mode)
	}
}
