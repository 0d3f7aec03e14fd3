package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"customerapp/db/migrations"
)

// NewMigrator builds a migrator over the embedded migrations of dialect.
// Closing the returned migrator closes db.
func NewMigrator(db *sql.DB, dialect Dialect) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	var driver migratedb.Driver
	var driverName string

	switch dialect {
	case Postgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
		driverName = "postgres"
	default:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		driverName = "sqlite3"
	}
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return nil, fmt.Errorf("create migration instance: %w", err)
	}

	return m, nil
}

// MigrateUp applies pending migrations and leaves db open.
func MigrateUp(db *sql.DB, dialect Dialect) error {
	m, err := NewMigrator(db, dialect)
	if err != nil {
		return err
	}

	return up(m)
}

// MigrateUpAndClose applies pending migrations on a dedicated handle.
func MigrateUpAndClose(db *sql.DB, dialect Dialect) error {
	m, err := NewMigrator(db, dialect)
	if err != nil {
		db.Close()
		return err
	}

	err = up(m)
	sourceErr, dbErr := m.Close()

	return errors.Join(err, sourceErr, dbErr)
}

// MigrateDownAndClose reverts every migration on a dedicated handle.
func MigrateDownAndClose(db *sql.DB, dialect Dialect) error {
	m, err := NewMigrator(db, dialect)
	if err != nil {
		db.Close()
		return err
	}

	err = m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("revert migrations: %w", err)
	}

	sourceErr, dbErr := m.Close()

	return errors.Join(err, sourceErr, dbErr)
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
