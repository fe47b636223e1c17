package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"loancalc/pkg/config"
)

// MigrateConfig brings the history schema (amortization_calculations and
// calculation_audit) up to date from migrationsPath, a golang-migrate source URL
// such as file://migrations. Already being current is not an error.
func MigrateConfig(migrationsPath string, cfg config.Config) error {
	m, err := migrate.New(migrationsPath, migrationConnString(cfg))
	if err != nil {
		return fmt.Errorf("load migrations from %s: %w", migrationsPath, err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
