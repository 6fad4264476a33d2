package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config holds runtime settings for the GradeSys CLI.
type Config struct {
	DataDir        string
	Storage        string
	PasswordScheme string
	MaxAttempts    int
	Lockout        time.Duration
	LogLevel       string
}

// LoadDefaults populates c with the defaults of a desktop install.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.Storage = StorageJSON
	c.PasswordScheme = "sha256"
	c.MaxAttempts = 3
	c.Lockout = 30 * time.Second
	c.LogLevel = "warn"
}

// LockoutSeconds is the lockout as whole countdown ticks, at least one.
func (c *Config) LockoutSeconds() int {
	s := int(c.Lockout / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// LoadConfig applies defaults, then the dotenv file and environment, then
// the JSON file, then flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "GradeSys")
	}
	return filepath.Join(home, "Documents", "GradeSys")
}
