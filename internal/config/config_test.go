package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oy3o/zrcodec"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, zrcodec.EngineLimits(), cfg.Limits)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel())
}

func TestLoadYAML(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeFile(t, "zrdump.yaml", `
limits:
  max_commands: 16
  max_clip_depth: 2
log:
  level: debug
output:
  color: never
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 16, cfg.Limits.MaxCommands)
	assert.EqualValues(t, 2, cfg.Limits.MaxClipDepth)
	assert.Equal(t, zrcodec.EngineLimits().MaxTotalBytes, cfg.Limits.MaxTotalBytes, "unset keys keep defaults")
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoadEmptyYAML(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadTOML(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeFile(t, "zrdump.toml", `
[limits]
max_total_bytes = 1024
max_strings = 0

[log]
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 1024, cfg.Limits.MaxTotalBytes)
	assert.Zero(t, cfg.Limits.MaxStrings)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	cfg, err := Load(writeFile(t, "zrdump.yaml", "log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, cfg.LogLevel())
}

func TestLoadRejects(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cases := []struct {
		name string
		file string
		body string
	}{
		{"UnknownYAMLKey", "a.yaml", "limits:\n  max_cmds: 1\n"},
		{"UnknownTOMLKey", "a.toml", "[log]\nlevl = \"info\"\n"},
		{"BadLevel", "a.yaml", "log:\n  level: loud\n"},
		{"BadFormat", "a.toml", "[log]\nformat = \"xml\"\n"},
		{"BadColor", "a.yaml", "output:\n  color: sometimes\n"},
		{"Extension", "a.json", "{}"},
		{"Syntax", "a.toml", "[limits\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tc.file, tc.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "b.yaml", "log:\n  level: loud\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}
