package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads from flags", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"data_dir":        "/data",
			"storage":         "sqlite",
			"password_scheme": "argon2id",
			"max_attempts":    5,
			"lockout":         "1m",
			"log_level":       "debug",
		})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "/data", cfg.DataDir)
		assert.Equal(t, StorageSQLite, cfg.Storage)
		assert.Equal(t, "argon2id", cfg.PasswordScheme)
		assert.Equal(t, 5, cfg.MaxAttempts)
		assert.Equal(t, time.Minute, cfg.Lockout)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{"max_attempts": 0})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, []string{"-c", path}))

		assert.Equal(t, 0, cfg.MaxAttempts)
		assert.Equal(t, 30*time.Second, cfg.Lockout)
		assert.Equal(t, StorageJSON, cfg.Storage)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		cfg := &Config{DataDir: "/keep"}
		require.NoError(t, parseJson(cfg, []string{"-d", "/other"}))
		assert.Equal(t, "/keep", cfg.DataDir)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})
}
