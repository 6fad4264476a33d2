package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/gradesys/internal/flagx"
)

const defaultEnvFile = ".env"

// lookupEnv is swapped in tests.
var lookupEnv = os.LookupEnv

// parseEnv overlays cfg with GRADESYS_* values. Variables already set in the
// process environment win over the dotenv file. A missing default .env is
// not an error; a missing file named with -e is.
func parseEnv(cfg *Config, args []string) error {
	path := flagx.EnvFileFlags(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVals, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		fileVals = map[string]string{}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	if v, ok := get("GRADESYS_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := get("GRADESYS_STORAGE"); ok {
		cfg.Storage = v
	}
	if v, ok := get("GRADESYS_PASSWORD_SCHEME"); ok {
		cfg.PasswordScheme = v
	}
	if v, ok := get("GRADESYS_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("GRADESYS_MAX_ATTEMPTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GRADESYS_MAX_ATTEMPTS: %w", err)
		}
		cfg.MaxAttempts = n
	}
	if v, ok := get("GRADESYS_LOCKOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GRADESYS_LOCKOUT: %w", err)
		}
		cfg.Lockout = d
	}
	return nil
}
