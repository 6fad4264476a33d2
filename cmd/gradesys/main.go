package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gradesys/internal/auth"
	"github.com/dmitrijs2005/gradesys/internal/buildinfo"
	"github.com/dmitrijs2005/gradesys/internal/cli"
	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/config"
	"github.com/dmitrijs2005/gradesys/internal/cryptox"
	"github.com/dmitrijs2005/gradesys/internal/filex"
	"github.com/dmitrijs2005/gradesys/internal/logging"
	"github.com/dmitrijs2005/gradesys/internal/repositories/credentials"
	"github.com/dmitrijs2005/gradesys/internal/repositories/snapshot"
	"github.com/dmitrijs2005/gradesys/internal/roster"
	"github.com/dmitrijs2005/gradesys/internal/store"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel)).
		With("session_id", uuid.NewString())

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return err
	}

	hasher, err := cryptox.ParseScheme(cfg.PasswordScheme)
	if err != nil {
		return err
	}

	snap, repo, closeFn, err := openStorage(ctx, cfg.Storage, dataDir)
	if err != nil {
		return err
	}
	defer closeFn()

	students, err := roster.Open(ctx, snap, logger)
	if err != nil {
		return err
	}
	creds := auth.NewCredentialStore(repo, hasher, logger)

	logger.Info(ctx, "session started", "data_dir", dataDir, "storage", cfg.Storage, "password_scheme", cfg.PasswordScheme)

	app := cli.NewApp(cfg, logger, students, creds, os.Stdin, os.Stdout)
	app.Run(ctx)
	return nil
}

// openStorage picks the roster and credential backends. "json" keeps the
// students.json/users.json files of the desktop app; "sqlite" keeps both in
// gradesys.db.
func openStorage(ctx context.Context, backend, dataDir string) (roster.Snapshotter, credentials.Repository, func(), error) {
	switch backend {
	case config.StorageJSON:
		snap := snapshot.NewJSONFile(filepath.Join(dataDir, common.RosterFileName))
		repo := credentials.NewJSONFile(filepath.Join(dataDir, common.CredentialFileName))
		return snap, repo, func() {}, nil

	case config.StorageSQLite:
		db, err := store.Open(ctx, filepath.Join(dataDir, common.DatabaseFileName))
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() { closeDB(db) }
		return snapshot.NewSQLite(db), credentials.NewSQLiteRepository(db), closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage backend %q (want %s or %s)", backend, config.StorageJSON, config.StorageSQLite)
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Printf("close database: %v", err)
	}
}
