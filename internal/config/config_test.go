package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Conflicts.WarnOnMultipleHandlers)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse("test.toml", []byte(`
[log]
level = "debug"
format = "json"

[conflicts]
warn_on_multiple_handlers = true
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Conflicts.WarnOnMultipleHandlers)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse("test.toml", []byte("[conflicts]\nwarn_on_multiple_handlers = true\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Conflicts.WarnOnMultipleHandlers)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[log\nlevel = "},
		{"unknown field", "[log]\ncolour = true\n"},
		{"wrong type", "[conflicts]\nwarn_on_multiple_handlers = \"yes\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.data))
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "bad.toml", pe.Path)
			assert.Contains(t, pe.Error(), "bad.toml")
		})
	}
}

func TestParseValidation(t *testing.T) {
	_, err := Parse("test.toml", []byte("[log]\nlevel = \"loud\"\n"))
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = Parse("test.toml", []byte("[log]\nformat = \"xml\"\n"))
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybind.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"error\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadReader(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader("[log]\nformat = \"json\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Conflicts.WarnOnMultipleHandlers = true

	data, err := cfg.Marshal()
	require.NoError(t, err)

	got, err := Parse("marshal", data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:               "warn",
		EnvWarnOnMultipleHandlers: "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := Default().ApplyEnv(lookup)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Conflicts.WarnOnMultipleHandlers)
}

func TestApplyEnvInvalid(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == EnvWarnOnMultipleHandlers {
			return "sometimes", true
		}
		return "", false
	}

	_, err := Default().ApplyEnv(lookup)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestApplyEnvProcessEnvironment(t *testing.T) {
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Default().ApplyEnv(nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLogging(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"

	lc := cfg.Logging(os.Stdout)
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, os.Stdout, lc.Output)
}
