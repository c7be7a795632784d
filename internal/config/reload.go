package config

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/keybind/internal/config/watcher"
	"github.com/dshills/keybind/internal/logging"
)

// Reloader re-reads a configuration file whenever it changes and passes
// the result to an apply callback. Invalid files are logged and skipped,
// leaving the last good configuration in effect.
type Reloader struct {
	path  string
	w     *watcher.Watcher
	apply func(Config)
	log   logrus.FieldLogger
}

// NewReloader starts watching path. apply is called from the watcher
// goroutine after each successful reload.
func NewReloader(path string, apply func(Config), log logrus.FieldLogger, opts ...watcher.Option) (*Reloader, error) {
	if log == nil {
		log = logging.New(logging.DefaultConfig())
	}

	w, err := watcher.New(append([]watcher.Option{watcher.WithLogger(log)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}

	r := &Reloader{path: path, w: w, apply: apply, log: log}
	w.OnChange(r.onChange)
	return r, nil
}

func (r *Reloader) onChange(ev watcher.Event) {
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		r.log.WithField("path", ev.Path).Info("config file removed, keeping current settings")
		return
	}

	cfg, err := Load(r.path)
	if err != nil {
		r.log.WithError(err).WithField("path", r.path).Warn("config reload failed")
		return
	}
	r.log.WithField("path", r.path).Debug("config reloaded")
	r.apply(cfg)
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.w.Close()
}
