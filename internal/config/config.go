// Package config loads keybind settings from TOML files and the environment.
//
// A configuration file looks like:
//
//	[log]
//	level = "info"    # debug, info, warn, error
//	format = "text"   # text or json
//
//	[conflicts]
//	warn_on_multiple_handlers = true
//
// Missing files are not an error; Load returns the defaults. Environment
// variables prefixed with KEYBIND_ override file values (see ApplyEnv).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keybind/internal/logging"
)

// Config holds all keybind settings.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Conflicts ConflictsConfig `toml:"conflicts"`
}

// LogConfig configures diagnostics output.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ConflictsConfig configures conflict detection.
type ConflictsConfig struct {
	// WarnOnMultipleHandlers logs a warning whenever a binding leaves a
	// keystroke with two or more handlers.
	WarnOnMultipleHandlers bool `toml:"warn_on_multiple_handlers"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Load reads configuration from path, layered over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadReader reads configuration from r.
func LoadReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse("<reader>", data)
}

// Parse decodes TOML data layered over the defaults and validates it.
// source names the data in error messages.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, NewParseError(source, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting holds a supported value.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q", ErrValidationFailed, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q", ErrValidationFailed, c.Log.Format)
	}
	return nil
}

// Logging converts the log section into a logging.Config writing to out.
func (c Config) Logging(out io.Writer) logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: out,
	}
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
