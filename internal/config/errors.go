package config

import "fmt"

// ConfigurationError reports an unrecognized or invalid configuration value.
// It is never retryable.
type ConfigurationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
}
