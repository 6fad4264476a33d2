// Package config loads runtime configuration for the GradeSys CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-e or -env, default ".env" when present) and the
//     process environment, which wins over the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags.
//
// Supported flags
//
//	-d string   data directory (students.json, users.json, exports)
//	-s string   storage backend: json or sqlite
//	-p string   password scheme for new hashes: sha256, argon2id or bcrypt
//	-m int      failed logins before lockout
//	-l int      lockout length (seconds)
//	-v string   log level: debug, info, warn or error
//
// Environment
//
//	GRADESYS_DATA_DIR, GRADESYS_STORAGE, GRADESYS_PASSWORD_SCHEME,
//	GRADESYS_MAX_ATTEMPTS, GRADESYS_LOCKOUT, GRADESYS_LOG_LEVEL
//
// # JSON schema
//
// Durations go through timex.Duration, so "30s" and integer nanoseconds
// both work:
//
//	{
//	  "data_dir": "/home/instructor/Documents/GradeSys",
//	  "storage": "sqlite",
//	  "password_scheme": "argon2id",
//	  "max_attempts": 3,
//	  "lockout": "30s",
//	  "log_level": "info"
//	}
package config
