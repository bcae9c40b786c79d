// Package config holds the compiler's configuration surface: resource
// ceilings, the optional URL probe, build metadata, and logging. Values come
// from defaults, an optional YAML project file, and command-line flags, in
// that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/The-Breeth/bui-compiler/internal/compiler"
)

// Config is the full configuration of one compiler invocation.
type Config struct {
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`
	MaxFiles         int   `yaml:"max_files"`

	ProbeURLs      bool `yaml:"probe_urls"`
	ProbeTimeoutMs int  `yaml:"probe_timeout_ms"`

	IncludeMetadata bool `yaml:"include_metadata"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		MaxFileSizeBytes: compiler.DefaultMaxFileSize,
		MaxFiles:         compiler.DefaultMaxFiles,
		ProbeTimeoutMs:   int(compiler.DefaultProbeTimeout / time.Millisecond),
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// ApplyFile overlays settings from a YAML file. A missing file is only an
// error when required is true, so a conventionally named project file can be
// probed without noise.
func (c *Config) ApplyFile(path string, required bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	return nil
}

// New validates a configuration and returns it.
func New(cfg Config) (*Config, error) {
	if cfg.MaxFileSizeBytes < 0 {
		return nil, errors.New("max_file_size_bytes must not be negative")
	}
	if cfg.MaxFiles < 0 {
		return nil, errors.New("max_files must not be negative")
	}
	if cfg.ProbeTimeoutMs < 0 {
		return nil, errors.New("probe_timeout_ms must not be negative")
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, errors.New("log_format must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, errors.New("log_level must be 'debug', 'info', 'warn' or 'error'")
	}
	return &cfg, nil
}

// CompilerOptions translates the configuration for the pipeline.
func (c Config) CompilerOptions() compiler.Options {
	return compiler.Options{
		MaxFileSize:     c.MaxFileSizeBytes,
		MaxFiles:        c.MaxFiles,
		ProbeURLs:       c.ProbeURLs,
		ProbeTimeout:    time.Duration(c.ProbeTimeoutMs) * time.Millisecond,
		IncludeMetadata: c.IncludeMetadata,
	}
}
