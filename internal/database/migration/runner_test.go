package migration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RomRom16/dossierfortil/internal/config"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func writeMigration(t *testing.T, dir, name, sqlText string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sqlText), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
}

func TestRunAppliesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V2__add_column.sql", `ALTER TABLE things ADD COLUMN label TEXT`)
	writeMigration(t, dir, "V1__create_table.sql", `CREATE TABLE things (id TEXT PRIMARY KEY)`)
	writeMigration(t, dir, "notes.txt", `ignored`)

	db := openTestDB(t)
	r := Runner{Dir: dir, Dialect: config.DriverSQLite}

	if err := r.Run(context.Background(), db); err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO things (id, label) VALUES ('a', 'b')`); err != nil {
		t.Fatalf("expected both migrations applied: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count applied: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 recorded migrations, got %d", n)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__create_table.sql", `CREATE TABLE things (id TEXT PRIMARY KEY)`)

	db := openTestDB(t)
	r := Runner{Dir: dir, Dialect: config.DriverSQLite}

	if err := r.Run(context.Background(), db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := r.Run(context.Background(), db); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestRunRejectsEditedMigration(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__create_table.sql", `CREATE TABLE things (id TEXT PRIMARY KEY)`)

	db := openTestDB(t)
	r := Runner{Dir: dir, Dialect: config.DriverSQLite}

	if err := r.Run(context.Background(), db); err != nil {
		t.Fatalf("first run: %v", err)
	}

	writeMigration(t, dir, "V1__create_table.sql", `CREATE TABLE things (id TEXT PRIMARY KEY, extra TEXT)`)
	err := r.Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestRunRejectsDuplicateVersions(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__one.sql", `CREATE TABLE a (id TEXT)`)
	writeMigration(t, dir, "V1__two.sql", `CREATE TABLE b (id TEXT)`)

	db := openTestDB(t)
	r := Runner{Dir: dir, Dialect: config.DriverSQLite}

	err := r.Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestRunRollsBackFailedMigration(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "V1__create_table.sql", `CREATE TABLE things (id TEXT PRIMARY KEY)`)
	writeMigration(t, dir, "V2__broken.sql", `THIS IS NOT SQL`)

	db := openTestDB(t)
	r := Runner{Dir: dir, Dialect: config.DriverSQLite}

	if err := r.Run(context.Background(), db); err == nil {
		t.Fatal("expected failure on broken migration")
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = 2`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatal("expected broken migration not recorded")
	}
}

func TestRunMissingDirIsNoop(t *testing.T) {
	db := openTestDB(t)
	r := Runner{Dir: filepath.Join(t.TempDir(), "nope"), Dialect: config.DriverSQLite}

	if err := r.Run(context.Background(), db); err != nil {
		t.Fatalf("expected missing dir to be a no-op, got %v", err)
	}
}
