package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/bbparse/internal/config"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bbparse", "config.yml")
	require.NoError(t, (&config.Config{OutputFormat: "plain"}).Save(path))

	var out bytes.Buffer
	require.NoError(t, runClear(path, true, &out))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "Configuration cleared from "+path)
}

func TestRunClear_NoConfigFile(t *testing.T) {
	clearEnv(t)
	var out bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "No config file to remove")
}

func TestRunClear_Idempotent(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, runClear(path, true, &bytes.Buffer{}))
	require.NoError(t, runClear(path, true, &bytes.Buffer{}))
}

func TestRunClear_NotesActiveEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BBPARSE_OUTPUT", "json")

	var out bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "Environment variables will still be used: BBPARSE_OUTPUT")
}
