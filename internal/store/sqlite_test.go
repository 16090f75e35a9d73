package store

import (
	"context"
	"testing"

	"github.com/pcte/equiptrack/internal/db"
	"github.com/pcte/equiptrack/internal/model"
)

func TestSQLiteAdapterEmptyDatabaseSeedsDefaults(t *testing.T) {
	adapter := NewSQLiteAdapter(db.NewTestDB(t))

	state, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Equipment) == 0 {
		t.Error("expected seeded default equipment")
	}
	if len(state.Moves) == 0 {
		t.Error("expected seeded default move")
	}
}

func TestSQLiteAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := NewSQLiteAdapter(db.NewTestDB(t))

	saved := &model.AppState{
		Equipment:     []model.Equipment{{ID: "e1", Name: "Scope", Location: "Perth"}},
		Moves:         []model.Move{{ID: "m1", EquipmentID: "e1", Type: model.MoveTypeMove}},
		Corrections:   []model.Correction{{ID: "c1", TargetType: model.TargetTypeMove, TargetID: "m1"}},
		SchemaVersion: model.StateVersion,
	}
	if err := adapter.Save(ctx, saved); err != nil {
		t.Fatal(err)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Equipment) != 1 || loaded.Equipment[0].Location != "Perth" {
		t.Errorf("equipment = %+v, want saved record", loaded.Equipment)
	}
	if len(loaded.Corrections) != 1 || loaded.Corrections[0].ID != "c1" {
		t.Errorf("corrections = %+v, want saved record", loaded.Corrections)
	}
}

func TestSQLiteAdapterSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	adapter := NewSQLiteAdapter(db.NewTestDB(t))

	if err := adapter.Save(ctx, &model.AppState{
		Equipment:     []model.Equipment{{ID: "e1"}},
		SchemaVersion: model.StateVersion,
	}); err != nil {
		t.Fatal(err)
	}
	if err := adapter.Save(ctx, &model.AppState{
		Equipment:     []model.Equipment{{ID: "e2"}},
		SchemaVersion: model.StateVersion,
	}); err != nil {
		t.Fatal(err)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Equipment) != 1 || loaded.Equipment[0].ID != "e2" {
		t.Errorf("equipment = %+v, want only the second save", loaded.Equipment)
	}
}

func TestSQLiteAdapterClear(t *testing.T) {
	ctx := context.Background()
	adapter := NewSQLiteAdapter(db.NewTestDB(t))

	if err := adapter.Save(ctx, &model.AppState{
		Equipment:     []model.Equipment{{ID: "e1"}},
		SchemaVersion: model.StateVersion,
	}); err != nil {
		t.Fatal(err)
	}
	if err := adapter.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	// Back to the seeded defaults.
	state, err := adapter.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range state.Equipment {
		if item.ID == "e1" {
			t.Error("cleared snapshot still loaded")
		}
	}
}

func TestEquipmentPhotos(t *testing.T) {
	ctx := context.Background()
	database := db.NewTestDB(t)

	data, mime, err := GetEquipmentPhoto(ctx, database, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if data != nil || mime != "" {
		t.Errorf("expected no photo, got %d bytes %q", len(data), mime)
	}

	if err := SetEquipmentPhoto(ctx, database, "e1", []byte("first"), "image/jpeg"); err != nil {
		t.Fatal(err)
	}
	if err := SetEquipmentPhoto(ctx, database, "e1", []byte("second"), "image/jpeg"); err != nil {
		t.Fatal(err)
	}

	data, mime, err = GetEquipmentPhoto(ctx, database, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" || mime != "image/jpeg" {
		t.Errorf("photo = %q %q, want replaced blob", data, mime)
	}

	if err := DeleteEquipmentPhoto(ctx, database, "e1"); err != nil {
		t.Fatal(err)
	}
	data, _, err = GetEquipmentPhoto(ctx, database, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Error("photo still present after delete")
	}
}
