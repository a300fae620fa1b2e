package main

import (
	"database/sql"
	"fmt"

	"event-signup/data/repository"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog"
)

// openRepo builds the configured storage backend: JSON collection files or
// Postgres with migrations applied.
func openRepo(cfg config, logger zerolog.Logger) (repository.Repo, error) {
	switch cfg.Backend {
	case "file":
		logger.Info().Str("dir", cfg.DataDir).Msg("using file storage")
		return repository.NewFileRepo(cfg.DataDir)

	case "postgres":
		db, err := openDB(cfg.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("database connection established")

		repo := &repository.SqlRepo{DB: db}
		if err := repo.RunMigrations(cfg.DBName); err != nil {
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	return db, nil
}
