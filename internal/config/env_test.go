package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(`# local overrides
GRADESYS_DATA_DIR=/tmp/grades
GRADESYS_STORAGE=sqlite
GRADESYS_PASSWORD_SCHEME=bcrypt
GRADESYS_LOCKOUT=10s
`), 0o600))

	t.Run("file values", func(t *testing.T) {
		noEnv(t, nil)
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseEnv(cfg, []string{"-e", envFile}))

		want := &Config{
			DataDir:        "/tmp/grades",
			Storage:        StorageSQLite,
			PasswordScheme: "bcrypt",
			MaxAttempts:    3,
			Lockout:        10 * time.Second,
			LogLevel:       "warn",
		}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("process env wins", func(t *testing.T) {
		noEnv(t, map[string]string{"GRADESYS_STORAGE": "json", "GRADESYS_LOG_LEVEL": "error"})
		cfg := &Config{}
		require.NoError(t, parseEnv(cfg, []string{"-env=" + envFile}))
		assert.Equal(t, StorageJSON, cfg.Storage)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "bcrypt", cfg.PasswordScheme)
	})

	t.Run("no default file is fine", func(t *testing.T) {
		noEnv(t, nil)
		cfg := &Config{Storage: "json"}
		require.NoError(t, parseEnv(cfg, nil))
		assert.Equal(t, "json", cfg.Storage)
	})

	t.Run("bad numbers", func(t *testing.T) {
		noEnv(t, map[string]string{"GRADESYS_MAX_ATTEMPTS": "x"})
		require.Error(t, parseEnv(&Config{}, nil))

		noEnv(t, map[string]string{"GRADESYS_LOCKOUT": "forever"})
		require.Error(t, parseEnv(&Config{}, nil))
	})
}
