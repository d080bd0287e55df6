// Command seed loads the trivia schema, the fixed category list and a set
// of sample questions. Categories are not creatable through the API, so
// this is the only way they get into a fresh database.
package main

import (
	"context"
	"database/sql"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"sort"

	_ "github.com/lib/pq"

	"github.com/udacity-trivia/trivia-api/app/config"
)

//go:embed sql/*.sql
var seedFiles embed.FS

func main() {
	reset := flag.Bool("reset", false, "drop existing tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := run(context.Background(), db, seedFiles, *reset); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Database seeded successfully")
}

// run executes every embedded SQL file in name order inside a single
// transaction.
func run(ctx context.Context, db *sql.DB, files fs.FS, reset bool) error {
	names, err := fs.Glob(files, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list seed files: %w", err)
	}
	sort.Strings(names)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if reset {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS questions, categories"); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	for _, name := range names {
		content, err := fs.ReadFile(files, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute %s: %w", name, err)
		}
		log.Printf("Executed %s", name)
	}

	return tx.Commit()
}
