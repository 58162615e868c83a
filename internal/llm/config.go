package llm

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/optiforge/orsolve/internal/llm/providers"
)

// DefaultHTTPTimeout bounds a single completion round-trip. Reasoning-heavy
// OR prompts routinely take more than a minute on large models.
const DefaultHTTPTimeout = 120 * time.Second

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ObservabilityConfig controls what the logging middleware emits.
type ObservabilityConfig struct {
	// RedactPrompts logs prompt lengths instead of prompt text.
	RedactPrompts bool `yaml:"redact_prompts"`

	// LogResponses includes completion text in success log lines.
	LogResponses bool `yaml:"log_responses"`
}

// Config holds the completion client configuration. Model identifiers are
// deliberately not part of it: callers bind a model explicitly when they
// construct an expert or invoke a baseline, keeping runs reproducible.
type Config struct {
	// HTTPTimeout applies when HTTPClient is nil.
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client `yaml:"-"`

	// Providers maps provider name to endpoint/auth settings.
	Providers map[string]providers.Config `yaml:"providers" validate:"required,min=1"`

	// Observability controls the logging middleware.
	Observability ObservabilityConfig `yaml:"observability"`
}

// DefaultConfig returns a config with production timeouts and no providers.
// At least one provider must be added before constructing a client.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout: DefaultHTTPTimeout,
		Providers:   map[string]providers.Config{},
	}
}

// ResolveAPIKeys fills each provider's APIKey from the environment variable
// named by APIKeyEnv when the key itself is unset. Keys never live in
// configuration files.
func (c *Config) ResolveAPIKeys() {
	for name, pc := range c.Providers {
		if pc.APIKey == "" && pc.APIKeyEnv != "" {
			pc.APIKey = os.Getenv(pc.APIKeyEnv)
			c.Providers[name] = pc
		}
	}
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	return nil
}
