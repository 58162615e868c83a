package expert

import "fmt"

// ConfigurationError indicates an expert was constructed without a required
// field (role description, forward task, name, or model binding).
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid expert configuration: %s %s", e.Field, e.Reason)
}

// CapabilityError indicates a pipeline was invoked that the expert was not
// configured with.
type CapabilityError struct {
	Name       string
	Capability string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("expert %q has no %s pipeline", e.Name, e.Capability)
}
