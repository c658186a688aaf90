package contract

import "fmt"

// ConfigError indicates an invalid configuration. It is fatal and surfaced
// before any analysis work starts; no partial run is ever produced.
type ConfigError struct {
	Option string // Offending option, e.g. "weights"
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.Option, e.Reason)
}

// NewConfigError builds a ConfigError for the given option.
func NewConfigError(option, format string, args ...any) *ConfigError {
	return &ConfigError{Option: option, Reason: fmt.Sprintf(format, args...)}
}
