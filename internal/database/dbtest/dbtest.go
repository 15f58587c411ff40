// Package dbtest provides an in-memory SQLite database for package tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/internal/entity"
)

// New opens a fresh in-memory database with every entity table created.
// The database is closed when the test ends.
func New(t testing.TB) *database.Connections {
	t.Helper()

	sqldb, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, m := range entity.Models() {
		if _, err := db.NewCreateTable().Model(m).Exec(ctx); err != nil {
			t.Fatalf("create table for %T: %v", m, err)
		}
	}

	return &database.Connections{Writer: db, Reader: db}
}
