package model

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestMigrateEmptyInputs(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("null"), []byte("{}"), []byte("not json")} {
		state := MigrateSnapshot(raw)
		if state.SchemaVersion != StateVersion {
			t.Errorf("MigrateSnapshot(%q): schemaVersion = %d, want %d", raw, state.SchemaVersion, StateVersion)
		}
		if state.StateVersion != StateVersion {
			t.Errorf("MigrateSnapshot(%q): stateVersion = %d, want %d", raw, state.StateVersion, StateVersion)
		}
		if len(state.Equipment) != 0 || len(state.Moves) != 0 || len(state.Corrections) != 0 {
			t.Errorf("MigrateSnapshot(%q): expected empty lists", raw)
		}
		if len(state.Locations) != len(DefaultLocations) {
			t.Errorf("MigrateSnapshot(%q): expected default locations", raw)
		}
	}
}

func TestMigrateLegacyAliases(t *testing.T) {
	raw := []byte(`{
		"items": [{"id": "e1", "name": "Scope"}],
		"log": [{"id": "m1", "equipmentId": "e1", "type": "move"}],
		"stateVersion": 5
	}`)

	state := MigrateSnapshot(raw)
	if len(state.Equipment) != 1 || state.Equipment[0].ID != "e1" {
		t.Fatalf("expected equipment from items alias, got %+v", state.Equipment)
	}
	if len(state.Moves) != 1 || state.Moves[0].ID != "m1" {
		t.Fatalf("expected moves from log alias, got %+v", state.Moves)
	}
	if state.SchemaVersion != 5 {
		t.Errorf("schemaVersion = %d, want 5 (fallback to stateVersion)", state.SchemaVersion)
	}
	if state.StateVersion != 5 {
		t.Errorf("stateVersion = %d, want 5", state.StateVersion)
	}
}

func TestMigrateVersionsResolveIndependently(t *testing.T) {
	state := MigrateSnapshot([]byte(`{"schemaVersion": 3, "stateVersion": 7}`))
	if state.SchemaVersion != 3 {
		t.Errorf("schemaVersion = %d, want 3", state.SchemaVersion)
	}
	if state.StateVersion != 7 {
		t.Errorf("stateVersion = %d, want 7", state.StateVersion)
	}

	// Non-integer versions are ignored.
	state = MigrateSnapshot([]byte(`{"schemaVersion": 2.5, "stateVersion": "7"}`))
	if state.SchemaVersion != StateVersion || state.StateVersion != StateVersion {
		t.Errorf("expected both versions to fall back to %d, got %d/%d",
			StateVersion, state.SchemaVersion, state.StateVersion)
	}
}

func TestMigrateExtraFieldsPassThrough(t *testing.T) {
	raw := []byte(`{"schemaVersion": 2, "customNotes": {"pinned": true}}`)
	state := MigrateSnapshot(raw)

	extra, ok := state.Extra["customNotes"]
	if !ok {
		t.Fatal("expected customNotes preserved in Extra")
	}
	if !bytes.Contains(extra, []byte("pinned")) {
		t.Errorf("unexpected extra value: %s", extra)
	}

	encoded, err := json.Marshal(state)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(encoded, []byte("customNotes")) {
		t.Error("expected customNotes written back on save")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte(`{}`),
		[]byte(`{"items": [{"id": "e1"}], "log": [{"id": "m1"}], "stateVersion": 5, "other": [1, 2]}`),
		[]byte(`{"equipment": "oops", "moves": 7, "locations": []}`),
	}

	for _, raw := range inputs {
		once := MigrateSnapshot(raw)
		onceJSON, err := json.Marshal(once)
		if err != nil {
			t.Fatal(err)
		}
		twiceJSON, err := json.Marshal(MigrateSnapshot(onceJSON))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(onceJSON, twiceJSON) {
			t.Errorf("MigrateSnapshot not idempotent for %q:\nonce:  %s\ntwice: %s", raw, onceJSON, twiceJSON)
		}
	}
}

func TestMigrateNonEmptyLocationsKept(t *testing.T) {
	state := MigrateSnapshot([]byte(`{"locations": ["Depot A", "Depot B"]}`))
	if len(state.Locations) != 2 || state.Locations[0] != "Depot A" {
		t.Errorf("expected stored locations kept, got %v", state.Locations)
	}
}

func TestBuildDefaultStateFreshIDs(t *testing.T) {
	first := BuildDefaultState(StateVersion)
	second := BuildDefaultState(StateVersion)

	if len(first.Equipment) == 0 {
		t.Fatal("expected seed equipment")
	}
	seen := make(map[string]bool)
	for _, item := range first.Equipment {
		seen[item.ID] = true
	}
	for _, item := range second.Equipment {
		if seen[item.ID] {
			t.Errorf("seed id %q reused across calls", item.ID)
		}
	}

	// The seed move references a seed equipment item from the same state.
	if !seen[first.Moves[0].EquipmentID] {
		t.Error("seed move does not reference seed equipment")
	}
}
