package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/usersdb/usersdb/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every pending up migration. It is a no-op when the
// schema is current.
func MigrateUp(cfg config.DatabaseConfig) error {
	return runMigrations(cfg, (*migrate.Migrate).Up)
}

// MigrateDown reverts every applied migration.
func MigrateDown(cfg config.DatabaseConfig) error {
	return runMigrations(cfg, (*migrate.Migrate).Down)
}

func runMigrations(cfg config.DatabaseConfig, step func(*migrate.Migrate) error) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, DSN(cfg))
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := step(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate failed: %w", err)
	}
	return nil
}
