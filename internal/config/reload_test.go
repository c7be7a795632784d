package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/config/watcher"
)

func TestReloaderAppliesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"info\"\n"), 0644))

	applied := make(chan Config, 4)
	log, _ := test.NewNullLogger()
	r, err := NewReloader(path, func(c Config) { applied <- c }, log, watcher.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, os.WriteFile(path, []byte("[conflicts]\nwarn_on_multiple_handlers = true\n"), 0644))

	select {
	case cfg := <-applied:
		assert.True(t, cfg.Conflicts.WarnOnMultipleHandlers)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestReloaderKeepsLastGoodConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	applied := make(chan Config, 4)
	log, hook := test.NewNullLogger()
	r, err := NewReloader(path, func(c Config) { applied <- c }, log, watcher.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0644))

	assert.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel && e.Message == "config reload failed" {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond)

	assert.Empty(t, applied)
}
