// Package app holds the start-up wiring shared by the binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/iliyamo/recipe-api/internal/config"
	"github.com/iliyamo/recipe-api/internal/database"
	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/repository"
)

// OpenStore returns the repository set selected by cfg.DBDriver. For MySQL it
// opens the pool and, when enabled, applies migrations. The returned close
// func is always safe to call.
func OpenStore(ctx context.Context, cfg config.Config, log logging.Logger) (repository.Set, func(), error) {
	switch cfg.DBDriver {
	case "memory":
		log.Warn(ctx, "using in-memory store; data is lost on restart")
		return repository.NewMemorySet(), func() {}, nil
	case "mysql":
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return repository.Set{}, func() {}, fmt.Errorf("open mysql: %w", err)
		}
		if cfg.DBMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return repository.Set{}, func() {}, fmt.Errorf("open store: %w", err)
			}
			log.Info(ctx, "migrations applied")
		}
		return repository.NewMySQLSet(db), func() { _ = db.Close() }, nil
	}
	return repository.Set{}, func() {}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// NewLogger builds the process logger from cfg, writing to stderr.
func NewLogger(cfg config.Config) logging.Logger {
	return logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat).With("env", cfg.Env)
}
