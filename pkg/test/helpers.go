package test

import (
	"context"
	"log"
	"testing"

	"customerapp/internal/adapter/database"
)

// InitTestDB opens a private in-memory SQLite store with every migration applied.
func InitTestDB() *database.DB {
	db, err := database.Open(context.Background(), database.Config{
		Driver: string(database.SQLite),
		Path:   ":memory:",
		Name:   "customerapp_test",
	})
	if err != nil {
		log.Fatal(err)
	}

	return db
}

func TeardownTestDB(t *testing.T, db *database.DB) {
	t.Helper()

	if db == nil {
		return
	}

	CleanDB(t, db)
	db.Close()
}

// CleanDB empties every application table, keeping the migration bookkeeping.
func CleanDB(t *testing.T, db *database.DB) {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT IN ('sqlite_sequence', 'schema_migrations')")
	if err != nil {
		t.Fatalf("failed to query tables: %v", err)
	}

	var tables []string
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			rows.Close()
			t.Fatalf("failed to scan table name: %v", err)
		}
		tables = append(tables, table)
	}
	rows.Close()

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}
}
