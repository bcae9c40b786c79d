package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/The-Breeth/bui-compiler/internal/compiler"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	require.Equal(t, int64(compiler.DefaultMaxFileSize), cfg.MaxFileSizeBytes)
	require.Equal(t, compiler.DefaultMaxFiles, cfg.MaxFiles)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.False(t, cfg.ProbeURLs)
}

func TestApplyFile_Overlay(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "bui.yaml")
	yaml := "max_files: 3\nlog_level: debug\nprobe_urls: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	cfg := Default()

	// --- Act ---
	err := cfg.ApplyFile(path, true)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxFiles)
	require.Equal(t, "debug", cfg.LogLevel)
	require.True(t, cfg.ProbeURLs)
	require.Equal(t, int64(compiler.DefaultMaxFileSize), cfg.MaxFileSizeBytes, "untouched keys keep their defaults")
}

func TestApplyFile_MissingOptionalFile(t *testing.T) {
	t.Parallel()

	cfg := Default()

	require.NoError(t, cfg.ApplyFile(filepath.Join(t.TempDir(), "bui.yaml"), false))
	require.Error(t, cfg.ApplyFile(filepath.Join(t.TempDir(), "bui.yaml"), true))
}

func TestApplyFile_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bui.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_files: [not an int\n"), 0o600))
	cfg := Default()

	require.Error(t, cfg.ApplyFile(path, true))
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative file size", func(c *Config) { c.MaxFileSizeBytes = -1 }},
		{"negative max files", func(c *Config) { c.MaxFiles = -1 }},
		{"negative probe timeout", func(c *Config) { c.ProbeTimeoutMs = -1 }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.mutate(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
		})
	}
}

func TestNew_AcceptsDefaults(t *testing.T) {
	t.Parallel()

	validated, err := New(Default())

	require.NoError(t, err)
	require.NotNil(t, validated)
}

func TestCompilerOptions(t *testing.T) {
	t.Parallel()

	cfg := Config{
		MaxFileSizeBytes: 1024,
		MaxFiles:         4,
		ProbeURLs:        true,
		ProbeTimeoutMs:   1500,
		IncludeMetadata:  true,
	}

	opts := cfg.CompilerOptions()

	require.Equal(t, int64(1024), opts.MaxFileSize)
	require.Equal(t, 4, opts.MaxFiles)
	require.True(t, opts.ProbeURLs)
	require.Equal(t, 1500*time.Millisecond, opts.ProbeTimeout)
	require.True(t, opts.IncludeMetadata)
}
