package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"
)

const defaultSQLitePath = "customers.db"

// Open connects to the configured store, instruments it with tracing and
// optional statement logging, and applies pending migrations.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case Postgres:
		return openPostgres(ctx, cfg)
	default:
		return openSQLite(ctx, cfg)
	}
}

func openSQLite(ctx context.Context, cfg Config) (*DB, error) {
	path := cfg.Path
	if path == "" {
		path = defaultSQLitePath
	}

	sqlDB, err := instrumentedOpen("sqlite3", path, "sqlite", cfg)
	if err != nil {
		return nil, err
	}

	// Every connection to an in-memory database sees its own schema.
	if isMemory(path) {
		sqlDB.SetMaxOpenConns(1)
	} else {
		cfg.applyPool(sqlDB)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := MigrateUp(sqlDB, SQLite); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return New(sqlDB, SQLite), nil
}

func openPostgres(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	sqlDB, err := instrumentedOpen("pgx", cfg.URL, "postgresql", cfg)
	if err != nil {
		return nil, err
	}

	cfg.applyPool(sqlDB)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	// The postgres migration driver pins a connection, so it gets its own handle.
	migrationDB, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := MigrateUpAndClose(migrationDB, Postgres); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return New(sqlDB, Postgres), nil
}

func instrumentedOpen(driverName, dsn, system string, cfg Config) (*sql.DB, error) {
	name := cfg.Name
	if name == "" {
		name = "customerapp"
	}

	sqlDB, err := otelsql.Open(driverName, dsn,
		otelsql.WithDBSystem(system),
		otelsql.WithDBName(name),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}

	if !cfg.SQLLog {
		return sqlDB, nil
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sql").Logger()

	logged := sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger),
		sqldblogger.WithMinimumLevel(sqldblogger.LevelDebug),
		sqldblogger.WithDurationUnit(sqldblogger.DurationMillisecond),
		sqldblogger.WithTimeFormat(sqldblogger.TimeFormatRFC3339),
	)
	sqlDB.Close()

	return logged, nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// OpenForMigrations opens an uninstrumented handle for the migrate command.
func OpenForMigrations(cfg Config) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	driverName, dsn := "sqlite3", cfg.Path
	if dsn == "" {
		dsn = defaultSQLitePath
	}
	if dialect == Postgres {
		driverName, dsn = "pgx", cfg.URL
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", driverName, err)
	}

	return db, dialect, nil
}
