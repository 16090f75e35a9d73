package model

import (
	"bytes"
	"encoding/json"
	"math"
)

// MigrateSnapshot upgrades an arbitrary stored snapshot to the canonical
// AppState shape. It is total: malformed input degrades to an empty snapshot
// rather than failing, and running it again on its own output is a no-op.
// It must be re-run on every load so future schema changes stay additive.
//
// Legacy aliases: "items" for equipment, "log" for moves, "stateVersion" for
// schemaVersion. Alias keys are kept in Extra untouched; only the governed
// fields are rewritten.
func MigrateSnapshot(raw []byte) *AppState {
	var top map[string]json.RawMessage
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &top); err != nil {
			top = nil
		}
	}

	equipment, ok := decodeList[Equipment](top["equipment"])
	if !ok {
		if equipment, ok = decodeList[Equipment](top["items"]); !ok {
			equipment = []Equipment{}
		}
	}

	moves, ok := decodeList[Move](top["moves"])
	if !ok {
		if moves, ok = decodeList[Move](top["log"]); !ok {
			moves = []Move{}
		}
	}

	corrections, ok := decodeList[Correction](top["corrections"])
	if !ok {
		corrections = []Correction{}
	}

	locations, ok := decodeList[string](top["locations"])
	if !ok || len(locations) == 0 {
		locations = append([]string(nil), DefaultLocations...)
	}

	// schemaVersion falls back to the legacy stateVersion; stateVersion keeps
	// its own stored integer, else mirrors the resolved schemaVersion. The
	// two fields resolve independently and may diverge.
	schemaVersion, ok := intFromRaw(top["schemaVersion"])
	if !ok {
		if schemaVersion, ok = intFromRaw(top["stateVersion"]); !ok {
			schemaVersion = StateVersion
		}
	}
	stateVersion, ok := intFromRaw(top["stateVersion"])
	if !ok {
		stateVersion = schemaVersion
	}

	var extra map[string]json.RawMessage
	for k, v := range top {
		if governedStateFields[k] {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = v
	}

	return &AppState{
		Equipment:     equipment,
		Moves:         moves,
		Corrections:   corrections,
		Locations:     locations,
		SchemaVersion: schemaVersion,
		StateVersion:  stateVersion,
		Extra:         extra,
	}
}

// decodeList decodes raw as a JSON array of T. Element decoding is best
// effort: a malformed element keeps whatever fields decoded before the
// mismatch instead of dropping the entry.
func decodeList[T any](raw json.RawMessage) ([]T, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, false
	}

	out := make([]T, 0, len(elems))
	for _, e := range elems {
		var v T
		_ = json.Unmarshal(e, &v)
		out = append(out, v)
	}
	return out, true
}

// intFromRaw reports whether raw is a JSON number with an integral value.
func intFromRaw(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
