package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case SQLite, "sqlite3", "":
		return SQLite, nil
	case Postgres, "postgresql", "pgx":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Config describes how to reach the store.
type Config struct {
	Driver          string
	Path            string
	URL             string
	Name            string
	SQLLog          bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
	Dialect      Dialect
}

// New wraps an open handle with the query builder of its dialect.
func New(db *sql.DB, dialect Dialect) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(placeholder(dialect))

	return &DB{
		DB:           db,
		QueryBuilder: &queryBuilder,
		Dialect:      dialect,
	}
}

func placeholder(dialect Dialect) squirrel.PlaceholderFormat {
	if dialect == Postgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

func (c Config) applyPool(db *sql.DB) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}
}
