package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gradesys/internal/flagx"
	"github.com/dmitrijs2005/gradesys/internal/timex"
)

// JsonConfig is the on-disk shape. Pointer fields tell "absent" from zero so
// a partial file only overrides what it names.
type JsonConfig struct {
	DataDir        *string         `json:"data_dir"`
	Storage        *string         `json:"storage"`
	PasswordScheme *string         `json:"password_scheme"`
	MaxAttempts    *int            `json:"max_attempts"`
	Lockout        *timex.Duration `json:"lockout"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.Storage != nil {
		cfg.Storage = *jc.Storage
	}
	if jc.PasswordScheme != nil {
		cfg.PasswordScheme = *jc.PasswordScheme
	}
	if jc.MaxAttempts != nil {
		cfg.MaxAttempts = *jc.MaxAttempts
	}
	if jc.Lockout != nil {
		cfg.Lockout = jc.Lockout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
