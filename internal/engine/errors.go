package engine

import "fmt"

// ConfigError rejects an invalid settings update. The engine keeps
// running on the last valid settings when one is returned.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
