package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty config uses defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "valid config",
			config:  Config{OutputFormat: "json", MaxDepth: 32, WrapWidth: 100, LogLevel: "debug"},
			wantErr: false,
		},
		{
			name:    "unknown output format",
			config:  Config{OutputFormat: "xml"},
			wantErr: true,
			errMsg:  "output_format must be one of",
		},
		{
			name:    "negative depth",
			config:  Config{MaxDepth: -1},
			wantErr: true,
			errMsg:  "max_depth must not be negative",
		},
		{
			name:    "negative width",
			config:  Config{WrapWidth: -5},
			wantErr: true,
			errMsg:  "wrap_width must not be negative",
		},
		{
			name:    "bad log level",
			config:  Config{LogLevel: "loud"},
			wantErr: true,
			errMsg:  "log_level is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("BBPARSE_OUTPUT", "json")
		t.Setenv("BBPARSE_MAX_DEPTH", "12")
		t.Setenv("BBPARSE_WRAP_WIDTH", "72")
		t.Setenv("BBPARSE_LOG_LEVEL", "debug")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "json", cfg.OutputFormat)
		assert.Equal(t, 12, cfg.MaxDepth)
		assert.Equal(t, 72, cfg.WrapWidth)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("empty and invalid env vars keep existing values", func(t *testing.T) {
		t.Setenv("BBPARSE_OUTPUT", "")
		t.Setenv("BBPARSE_MAX_DEPTH", "deep")
		t.Setenv("BBPARSE_WRAP_WIDTH", "")
		t.Setenv("BBPARSE_LOG_LEVEL", "")

		cfg := &Config{OutputFormat: "plain", MaxDepth: 8}
		cfg.LoadFromEnv()

		assert.Equal(t, "plain", cfg.OutputFormat)
		assert.Equal(t, 8, cfg.MaxDepth)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", dir)
		assert.Equal(t, filepath.Join(dir, "bbparse", "config.yml"), DefaultConfigPath())
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		path := DefaultConfigPath()

		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, home))
		assert.Contains(t, path, "bbparse")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")

	original := Config{
		OutputFormat: "json",
		MaxDepth:     20,
		WrapWidth:    90,
		LogLevel:     "info",
	}

	require.NoError(t, original.Save(configPath))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("max_depth: [oops"), 0600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		for _, v := range EnvVars() {
			t.Setenv(v, "")
		}

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultOutputFormat, cfg.OutputFormat)
		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Zero(t, cfg.MaxDepth)
	})

	t.Run("env overrides file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, (&Config{OutputFormat: "plain", MaxDepth: 5}).Save(configPath))
		t.Setenv("BBPARSE_OUTPUT", "json")
		t.Setenv("BBPARSE_MAX_DEPTH", "")

		cfg, err := LoadWithEnv(configPath)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.OutputFormat)
		assert.Equal(t, 5, cfg.MaxDepth)
	})

	t.Run("unreadable file is an error", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("max_depth: [oops"), 0600))

		_, err := LoadWithEnv(configPath)
		require.Error(t, err)
	})
}
