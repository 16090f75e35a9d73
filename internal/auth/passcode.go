package auth

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Settings keys for the admin gate.
const (
	passcodeHashKey = "admin_passcode_hash"
	adminModeKey    = "admin_mode"
)

// HasPasscode reports whether an admin passcode has been set.
func HasPasscode(ctx context.Context, db *sql.DB) (bool, error) {
	hash, err := getSetting(ctx, db, passcodeHashKey)
	if err != nil {
		return false, err
	}
	return hash != "", nil
}

// SetPasscode hashes and stores the shared admin passcode, replacing any
// existing one.
func SetPasscode(ctx context.Context, db *sql.DB, passcode string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing passcode: %w", err)
	}
	return setSetting(ctx, db, passcodeHashKey, string(hash))
}

// VerifyPasscode checks a passcode against the stored hash. A missing
// passcode never verifies.
func VerifyPasscode(ctx context.Context, db *sql.DB, passcode string) (bool, error) {
	hash, err := getSetting(ctx, db, passcodeHashKey)
	if err != nil {
		return false, err
	}
	if hash == "" {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil, nil
}

// EnableAdminMode turns the admin gate on.
func EnableAdminMode(ctx context.Context, db *sql.DB) error {
	return setSetting(ctx, db, adminModeKey, "true")
}

// DisableAdminMode turns the admin gate off.
func DisableAdminMode(ctx context.Context, db *sql.DB) error {
	return setSetting(ctx, db, adminModeKey, "false")
}

// IsAdminModeEnabled reports whether admin mode is on. Admin mode is never
// considered enabled without a passcode set.
func IsAdminModeEnabled(ctx context.Context, db *sql.DB) (bool, error) {
	enabled, err := getSetting(ctx, db, adminModeKey)
	if err != nil {
		return false, err
	}
	if enabled != "true" {
		return false, nil
	}
	return HasPasscode(ctx, db)
}

func getSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %q: %w", key, err)
	}
	return value, nil
}

func setSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing setting %q: %w", key, err)
	}
	return nil
}
