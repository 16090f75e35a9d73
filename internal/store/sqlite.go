package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pcte/equiptrack/internal/model"
)

// snapshotKey is the snapshots-table row holding the application state.
const snapshotKey = "app_state"

// SQLiteAdapter persists the snapshot as a single row in the snapshots
// table, so state writes share the database with settings and photo blobs.
type SQLiteAdapter struct {
	db *sql.DB
}

// NewSQLiteAdapter creates an adapter over an opened database. The schema
// must already be in place (db.Migrate).
func NewSQLiteAdapter(db *sql.DB) *SQLiteAdapter {
	return &SQLiteAdapter{db: db}
}

// Load reads and migrates the stored snapshot, or returns the seeded default
// state when no snapshot row exists yet.
func (a *SQLiteAdapter) Load(ctx context.Context) (*model.AppState, error) {
	var raw string
	err := a.db.QueryRowContext(ctx,
		`SELECT value FROM snapshots WHERE key = ?`, snapshotKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.BuildDefaultState(model.StateVersion), nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	return model.MigrateSnapshot([]byte(raw)), nil
}

// Save upserts the snapshot row.
func (a *SQLiteAdapter) Save(ctx context.Context, state *model.AppState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		snapshotKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	return nil
}

// Clear deletes the snapshot row.
func (a *SQLiteAdapter) Clear(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE key = ?`, snapshotKey,
	); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	return nil
}
