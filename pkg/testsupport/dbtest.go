package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunSQLiteDB returns an isolated in-memory bun database for tests.
func NewBunSQLiteDB() (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// ApplyMigrations executes every .sql file under dir in lexical order.
func ApplyMigrations(ctx context.Context, db *bun.DB, fsys fs.FS, dir string) error {
	entries, err := fs.Glob(fsys, dir+"/*.sql")
	if err != nil {
		return fmt.Errorf("testsupport: glob migrations: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("testsupport: read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("testsupport: apply migration %s: %w", name, err)
		}
	}
	return nil
}
