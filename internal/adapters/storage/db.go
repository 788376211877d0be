// Package storage holds shared storage infrastructure: the SQL interface
// stores depend on, schema initialization, and the storage error taxonomy.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by the document store.
// *sql.DB satisfies this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// Collection names. One table per collection; documents are JSON.
const (
	CollectionMembers       = "members"
	CollectionBills         = "bills"
	CollectionPackages      = "packages"
	CollectionNotifications = "notifications"
	CollectionDietPlans     = "dietPlans"
	CollectionAccounts      = "accounts"

	// CollectionDiagnostics is a scratch collection used only by the
	// storage doctor's write probe.
	CollectionDiagnostics = "diagnostics"
)

// Collections lists every collection the schema creates.
var Collections = []string{
	CollectionMembers,
	CollectionBills,
	CollectionPackages,
	CollectionNotifications,
	CollectionDietPlans,
	CollectionAccounts,
	CollectionDiagnostics,
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: One table per collection exists, WAL mode enabled
func InitDB(db SQLDB) error {
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	for _, name := range Collections {
		schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %q (
			id TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`, name)
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// IsCollection reports whether name is a known collection.
func IsCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}
