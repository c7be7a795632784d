package shortcut

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/keybind/internal/config"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *logrus.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithWarnOnMultipleHandlers enables the multiple-handler diagnostic.
func WithWarnOnMultipleHandlers(enabled bool) Option {
	return func(m *Manager) {
		m.warn = enabled
	}
}

// WithConfig applies settings from a loaded configuration.
func WithConfig(cfg config.Config) Option {
	return func(m *Manager) {
		m.warn = cfg.Conflicts.WarnOnMultipleHandlers
		m.level = cfg.Log.Level
	}
}
