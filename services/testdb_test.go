package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/LovationAdmin/finanzas/config"
)

// newTestDB returns a migrated SQLite store living in the test's temp dir.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := "sqlite://" + filepath.Join(t.TempDir(), "finanzas.db")
	if err := config.RunMigrations(url); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	db, _, err := config.InitDB(&config.Config{DatabaseURL: url, DBMaxOpenConns: 1})
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
