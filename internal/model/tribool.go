package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TriBool is a yes/no/unknown checklist flag. Stored snapshots encode these
// loosely: JSON booleans, the strings "yes"/"true"/"no"/"false" (case and
// whitespace insensitive), or anything else meaning unknown. Unmarshalling
// never fails; unrecognised values become unknown.
type TriBool struct {
	Known bool
	Value bool
}

// TriTrue, TriFalse and TriUnknown are convenience constructors.
var (
	TriTrue    = TriBool{Known: true, Value: true}
	TriFalse   = TriBool{Known: true, Value: false}
	TriUnknown = TriBool{}
)

func (t TriBool) MarshalJSON() ([]byte, error) {
	if !t.Known {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

func (t *TriBool) UnmarshalJSON(data []byte) error {
	// Unmarshal into *bool accepts null without setting the value, so the
	// null check has to come first.
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = TriUnknown
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = TriBool{Known: true, Value: b}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "true":
			*t = TriTrue
			return nil
		case "no", "false":
			*t = TriFalse
			return nil
		}
	}

	*t = TriUnknown
	return nil
}
