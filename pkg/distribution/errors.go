package distribution

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid distribution or sampling configuration.
// It is always terminal for the call that produced it: no partial sample
// is returned alongside one, and the sampler never degrades (for example
// by substituting a uniform distribution when all weights are zero).
type ConfigError struct {
	Op      string // operation that rejected the configuration
	Message string
}

func (e *ConfigError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func configErrorf(op, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Op: op, Message: fmt.Sprintf(format, args...)}
}
