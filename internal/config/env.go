package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override file settings.
const (
	EnvLogLevel               = "KEYBIND_LOG_LEVEL"
	EnvLogFormat              = "KEYBIND_LOG_FORMAT"
	EnvWarnOnMultipleHandlers = "KEYBIND_WARN_ON_MULTIPLE_HANDLERS"
)

// ApplyEnv overrides settings from KEYBIND_* environment variables using
// lookup (os.LookupEnv when nil). The result is validated.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvWarnOnMultipleHandlers); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q", ErrValidationFailed, EnvWarnOnMultipleHandlers, v)
		}
		c.Conflicts.WarnOnMultipleHandlers = b
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
