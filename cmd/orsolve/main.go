// Command orsolve prompts large language models to generate Python programs
// for operations-research problems, either one problem at a time or as a
// batch run over a CSV problem set.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optiforge/orsolve/internal/config"
	"github.com/optiforge/orsolve/internal/llm"
	"github.com/optiforge/orsolve/internal/problems"
	"github.com/optiforge/orsolve/internal/runner"
)

var (
	configPath string
	modeFlag   string

	// Per-run overrides of the configured defaults.
	providerFlag string
	modelFlag    string
	problemsFlag string
	outputFlag   string
	tagFlag      string
	exampleFlag  string
)

var rootCmd = &cobra.Command{
	Use:           "orsolve",
	Short:         "LLM solve harness for operations-research problems",
	Long:          "orsolve renders optimization problems into prompts, dispatches them to a\ncompletion backend at temperature 0, and logs the generated Python code.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var solveCmd = &cobra.Command{
	Use:   "solve [problem-file]",
	Short: "Solve a single problem and print the generated code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, client, err := setup()
		if err != nil {
			return err
		}

		description, err := readProblem(args)
		if err != nil {
			return err
		}

		var example string
		if exampleFlag != "" {
			data, err := os.ReadFile(exampleFlag)
			if err != nil {
				return fmt.Errorf("failed to read code example: %w", err)
			}
			example = string(data)
		}

		r, err := newRunner(cfg, logger, client)
		if err != nil {
			return err
		}

		code, err := r.Solve(cmd.Context(), problems.Problem{
			ID:          0,
			Description: description,
			CodeExample: example,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve every problem in the configured problem set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, client, err := setup()
		if err != nil {
			return err
		}

		path := cfg.ProblemsPath
		if problemsFlag != "" {
			path = problemsFlag
		}
		if path == "" {
			return fmt.Errorf("no problem set configured (set problems: in config or pass --problems)")
		}

		repo, err := problems.LoadCSV(path)
		if err != nil {
			return err
		}

		r, err := newRunner(cfg, logger, client)
		if err != nil {
			return err
		}

		summary, err := r.Run(cmd.Context(), repo, tagFlag)
		if err != nil {
			return err
		}

		logger.Info("run complete",
			"dir", summary.Dir,
			"total", summary.Total,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
		)
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d solved, snippets in %s\n",
			summary.Succeeded, summary.Total, summary.Dir)
		return nil
	},
}

// setup loads configuration and constructs the logger and completion client.
func setup() (*config.Config, *slog.Logger, llm.Client, error) {
	path, err := config.Find(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}

	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if outputFlag != "" {
		cfg.OutputDir = outputFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	client, err := llm.New(cfg.ClientConfig(), logger)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, client, nil
}

func newRunner(cfg *config.Config, logger *slog.Logger, client llm.Client) (*runner.Runner, error) {
	mode, err := runner.ParseMode(modeFlag)
	if err != nil {
		return nil, err
	}
	return runner.New(client, runner.Options{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		Mode:      mode,
		OutputDir: cfg.OutputDir,
		Logger:    logger,
	})
}

// readProblem takes the problem description from the file argument, or from
// stdin when no argument is given.
func readProblem(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read problem: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read problem from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", string(runner.ModeStandard), "solve mode: standard, cot, or coe")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "override the configured provider")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "override the configured model")
	rootCmd.PersistentFlags().StringVar(&outputFlag, "output", "", "override the snippet output directory")

	solveCmd.Flags().StringVar(&exampleFlag, "code-example", "", "path to starter code for cot/coe modes")

	runCmd.Flags().StringVar(&problemsFlag, "problems", "", "path to the CSV problem set")
	runCmd.Flags().StringVar(&tagFlag, "tag", "", "tag recorded in the run directory name")

	rootCmd.AddCommand(solveCmd, runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
