package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gradesys/internal/flagx"
)

// parseFlags overrides cfg with the short flags listed in the package doc.
// Unknown arguments are filtered out first so other loaders' flags pass.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-p", "-m", "-l", "-v"})

	fs := flag.NewFlagSet("gradesys", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (json|sqlite)")
	fs.StringVar(&cfg.PasswordScheme, "p", cfg.PasswordScheme, "password scheme (sha256|argon2id|bcrypt)")
	fs.IntVar(&cfg.MaxAttempts, "m", cfg.MaxAttempts, "failed logins before lockout")
	lockout := fs.Int("l", int(cfg.Lockout.Seconds()), "lockout length (in seconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "l" {
			cfg.Lockout = time.Duration(*lockout) * time.Second
		}
	})
	return nil
}
