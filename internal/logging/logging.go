// Package logging builds the logrus loggers used across keybind.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config configures a logger.
type Config struct {
	// Level is the minimum level name ("debug", "info", "warn", "error").
	Level string
	// Format is FormatText or FormatJSON.
	Format string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatText,
		Output: os.Stderr,
	}
}

// ParseLevel parses a level name, falling back to Info for unknown names.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning":
		return logrus.WarnLevel
	case "":
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// ValidLevel reports whether s names a logrus level.
func ValidLevel(s string) bool {
	if s == "" {
		return true
	}
	_, err := logrus.ParseLevel(s)
	return err == nil
}

// New creates a logger from cfg.
func New(cfg Config) *logrus.Logger {
	l := logrus.New()
	Apply(l, cfg)
	return l
}

// Apply reconfigures an existing logger in place.
func Apply(l *logrus.Logger, cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)
	l.SetLevel(ParseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, FormatJSON) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000",
		})
	}
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithComponent returns an entry tagged with the component field.
func WithComponent(l logrus.FieldLogger, component string) *logrus.Entry {
	return l.WithField("component", component)
}
