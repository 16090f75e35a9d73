package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Equipment photos live outside the JSON snapshot; a blob per equipment id.

// SetEquipmentPhoto stores or replaces an equipment item's photo.
func SetEquipmentPhoto(ctx context.Context, db *sql.DB, equipmentID string, data []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO photos (equipment_id, data, mime) VALUES (?, ?, ?)
		 ON CONFLICT (equipment_id) DO UPDATE SET data = excluded.data, mime = excluded.mime,
		     updated_at = CURRENT_TIMESTAMP`,
		equipmentID, data, mime,
	)
	if err != nil {
		return fmt.Errorf("storing equipment photo: %w", err)
	}
	return nil
}

// GetEquipmentPhoto returns an equipment item's photo data and MIME type, or
// nil data when no photo is stored.
func GetEquipmentPhoto(ctx context.Context, db *sql.DB, equipmentID string) ([]byte, string, error) {
	var data []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT data, mime FROM photos WHERE equipment_id = ?`, equipmentID,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting equipment photo: %w", err)
	}
	return data, mime, nil
}

// DeleteEquipmentPhoto removes an equipment item's photo.
func DeleteEquipmentPhoto(ctx context.Context, db *sql.DB, equipmentID string) error {
	if _, err := db.ExecContext(ctx,
		`DELETE FROM photos WHERE equipment_id = ?`, equipmentID,
	); err != nil {
		return fmt.Errorf("deleting equipment photo: %w", err)
	}
	return nil
}
