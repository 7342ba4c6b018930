package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	planner "github.com/goliatone/go-planner"
	"github.com/goliatone/go-planner/internal/di"
	"github.com/goliatone/go-planner/internal/markdown"
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("markdown-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown entry root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering entry files")
	driver := fs.String("driver", "sqlite3", "Database driver (sqlite3 or postgres)")
	dsn := fs.String("db", "planner.db", "Database path (sqlite3) or DSN (postgres)")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting entries")
	pruneMedia := fs.Bool("prune-media", false, "Remove previously imported attachments dropped from their documents")

	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openDatabase(*driver, *dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := applyMigrations(ctx, db); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	cfg := planner.DefaultConfig()
	cfg.Features.Import = true
	cfg.Features.Logger = true
	cfg.Import.Enabled = true
	cfg.Import.ContentDir = *contentDir
	cfg.Import.Pattern = *pattern

	module, err := planner.New(cfg, di.WithBunDB(db))
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	loader := markdown.NewLoader(os.DirFS(*contentDir), markdown.LoaderConfig{Pattern: *pattern})
	docs, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}

	result, err := module.Importer().ImportDocuments(ctx, docs, markdown.ImportOptions{
		DryRun:     *dryRun,
		PruneMedia: *pruneMedia,
	})
	if err != nil {
		return fmt.Errorf("import documents: %w", err)
	}

	fmt.Fprintf(os.Stdout, "imported %d documents: %d created, %d updated, %d skipped, %d media attached, %d media pruned\n",
		len(docs), len(result.CreatedEntryIDs), len(result.UpdatedEntryIDs), len(result.SkippedEntryIDs),
		result.AttachedMedia, result.PrunedMedia)
	return nil
}

func openDatabase(driver, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	switch driver {
	case "postgres":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "sqlite3":
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		sqldb.Close()
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

func applyMigrations(ctx context.Context, db *bun.DB) error {
	fsys := planner.GetMigrationsFS()
	entries, err := fsys.ReadDir("data/sql/migrations")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		raw, err := fsys.ReadFile("data/sql/migrations/" + entry.Name())
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}
