package db

import "testing"

func TestMigrateCreatesTables(t *testing.T) {
	database := NewTestDB(t)

	for _, table := range []string{"snapshots", "settings", "photos"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if _, err := database.Exec(
		`INSERT INTO settings (key, value) VALUES ('k', 'v')`,
	); err != nil {
		t.Fatal(err)
	}

	// Re-running migration must not recreate or wipe tables.
	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var value string
	if err := database.QueryRow(
		`SELECT value FROM settings WHERE key = 'k'`,
	).Scan(&value); err != nil || value != "v" {
		t.Errorf("settings row lost after re-migration: %q, %v", value, err)
	}
}
