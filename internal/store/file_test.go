package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pcte/equiptrack/internal/model"
)

func TestFileAdapterMissingFileSeedsDefaults(t *testing.T) {
	adapter := NewFileAdapter(filepath.Join(t.TempDir(), "state.json"))

	state, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Equipment) == 0 {
		t.Error("expected seeded default equipment")
	}
	if state.SchemaVersion != model.StateVersion {
		t.Errorf("schemaVersion = %d, want %d", state.SchemaVersion, model.StateVersion)
	}
}

func TestFileAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	adapter := NewFileAdapter(path)

	saved := &model.AppState{
		Equipment:     []model.Equipment{{ID: "e1", Name: "Scope"}},
		Moves:         []model.Move{{ID: "m1", EquipmentID: "e1", Type: model.MoveTypeMove}},
		SchemaVersion: model.StateVersion,
	}
	if err := adapter.Save(ctx, saved); err != nil {
		t.Fatal(err)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Equipment) != 1 || loaded.Equipment[0].ID != "e1" {
		t.Errorf("equipment = %+v, want saved record", loaded.Equipment)
	}
	if len(loaded.Moves) != 1 || loaded.Moves[0].ID != "m1" {
		t.Errorf("moves = %+v, want saved record", loaded.Moves)
	}
}

func TestFileAdapterCorruptFileCoerced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{{{ not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := NewFileAdapter(path).Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt file should coerce, got error %v", err)
	}
	if state.SchemaVersion != model.StateVersion || len(state.Equipment) != 0 {
		t.Errorf("coerced state = %+v, want empty canonical state", state)
	}
}

func TestFileAdapterClear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	adapter := NewFileAdapter(path)

	if err := adapter.Save(ctx, &model.AppState{SchemaVersion: model.StateVersion}); err != nil {
		t.Fatal(err)
	}
	if err := adapter.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("snapshot file still present after Clear: %v", err)
	}

	// Clearing a second time is fine.
	if err := adapter.Clear(ctx); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}
