package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"TSHEET_STORAGE_DRIVER", "TSHEET_STORAGE_PATH", "TSHEET_LOG_LEVEL", "TSHEET_ADDR"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromFirstRunWritesTemplate(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultDriver, cfg.Storage.Driver)
	assert.Equal(t, dir, cfg.Storage.Path)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)

	_, err = os.Stat(path)
	require.NoError(t, err)

	// The written template must itself parse to the defaults.
	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadFromPartialFileBackfillsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	content := `// comment
{
  "storage": {
    // inner comment
    "driver": "sqlite",
    "path": "/data/tsheet"
  },
  "outlook": {"default_project": "Meetings"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/data/tsheet", cfg.Storage.Path)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DefaultClientID, cfg.Outlook.ClientID)
	assert.Equal(t, "Meetings", cfg.Outlook.DefaultProject)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TSHEET_STORAGE_DRIVER", "buntdb")
	t.Setenv("TSHEET_LOG_LEVEL", "debug")
	t.Setenv("TSHEET_ADDR", "127.0.0.1:9000")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "buntdb", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoadFromInvalidJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	cfg, err := LoadFrom(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultDriver, cfg.Storage.Driver)
}

func TestStripLineComments(t *testing.T) {
	got := string(stripLineComments([]byte("// a\n  // b\n{\"x\": \"http://y\"}")))
	assert.Equal(t, "{\"x\": \"http://y\"}\n", got)
}
