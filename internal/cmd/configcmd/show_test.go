package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/bbparse/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars() {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{OutputFormat: "json", MaxDepth: 12}).Save(path))

	var out bytes.Buffer
	require.NoError(t, runShow(path, true, &out))

	s := out.String()
	assert.Contains(t, s, "json  (source: config)")
	assert.Contains(t, s, "12  (source: config)")
	assert.Contains(t, s, "warn  (source: default)")
	assert.Contains(t, s, "Config file: "+path)
	assert.NotContains(t, s, "file not found")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("BBPARSE_LOG_LEVEL", "debug")
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{LogLevel: "error"}).Save(path))

	var out bytes.Buffer
	require.NoError(t, runShow(path, true, &out))
	assert.Contains(t, out.String(), "debug  (source: BBPARSE_LOG_LEVEL)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "missing.yml")

	var out bytes.Buffer
	require.NoError(t, runShow(path, true, &out))

	s := out.String()
	assert.Contains(t, s, "table  (source: default)")
	assert.Contains(t, s, "(file not found)")
}

func TestRunShow_InvalidConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, writeFile(path, "max_depth: [oops"))

	err := runShow(path, true, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
