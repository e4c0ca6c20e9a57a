package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oy3o/zrcodec"
)

const EnvLogLevel = "ZRDUMP_LOG_LEVEL"

var ErrInvalid = errors.New("config: invalid")

// Config is the zrdump configuration.
type Config struct {
	Limits zrcodec.Limits `yaml:"limits" toml:"limits"`
	Log    Log            `yaml:"log" toml:"log"`
	Output Output         `yaml:"output" toml:"output"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // console or json
}

type Output struct {
	Color string `yaml:"color" toml:"color"` // auto, always or never
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Limits: zrcodec.EngineLimits(),
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Output: Output{
			Color: "auto",
		},
	}
}

// Load reads the file at path over the defaults. The format follows the
// extension: .yaml, .yml or .toml. An empty path yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load failed (%s): %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys %v", undecoded)
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		cfg.Log.Level = lvl
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: output.color %q", ErrInvalid, c.Output.Color)
	}
	return nil
}

// LogLevel returns the parsed log level. Call Validate first.
func (c *Config) LogLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
