// Package config handles orsolve configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/optiforge/orsolve/internal/llm"
	"github.com/optiforge/orsolve/internal/llm/providers"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Duration wraps time.Duration so YAML values like "90s" parse.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds all orsolve configuration.
type Config struct {
	// Provider and Model bind every solve pipeline for the run. Explicit,
	// never defaulted: runs must be reproducible from the config alone.
	Provider string `yaml:"provider" validate:"required"`
	Model    string `yaml:"model" validate:"required"`

	// Backends configures the completion endpoints by provider name.
	Backends map[string]providers.Config `yaml:"backends" validate:"required,min=1"`

	// HTTPTimeout bounds a single completion round-trip.
	HTTPTimeout Duration `yaml:"http_timeout"`

	// ProblemsPath points at the CSV problem set for batch runs.
	ProblemsPath string `yaml:"problems"`

	// OutputDir receives the per-run snippet directories.
	OutputDir string `yaml:"output_dir"`

	// Observability controls the completion logging middleware.
	Observability llm.ObservabilityConfig `yaml:"observability"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultSearchPaths returns the config file search order. An explicit path
// (from --config) is checked first, then ./orsolve.yaml, then
// ~/.config/orsolve/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"orsolve.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "orsolve", "config.yaml"))
	}
	return paths
}

// Find locates a config file. If explicit is non-empty it must exist;
// otherwise the first existing search path wins.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Load reads, defaults, and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = Duration(llm.DefaultHTTPTimeout)
	}
	if c.OutputDir == "" {
		c.OutputDir = "log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ClientConfig derives the completion client configuration.
func (c *Config) ClientConfig() *llm.Config {
	return &llm.Config{
		HTTPTimeout:   time.Duration(c.HTTPTimeout),
		Providers:     c.Backends,
		Observability: c.Observability,
	}
}
