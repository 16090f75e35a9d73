package model

import "encoding/json"

// TargetTypeMove is the only correction target type currently in use.
const TargetTypeMove = "move"

// Correction is an audit-trail entry amending the effective interpretation of
// a past move. Corrections are immutable once created and never alter the
// original move in storage; they are replayed at read time.
type Correction struct {
	ID         string                 `json:"id"`
	TS         string                 `json:"ts"`
	TargetType string                 `json:"targetType"`
	TargetID   string                 `json:"targetId"`
	Reason     string                 `json:"reason,omitempty"`
	Changes    map[string]FieldChange `json:"changes"`
}

// FieldChange records a single field amendment.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// UnmarshalJSON tolerates non-string from/to values in stored corrections:
// strings decode as-is, other scalars keep their JSON text, anything else
// becomes empty.
func (c *FieldChange) UnmarshalJSON(data []byte) error {
	var raw struct {
		From json.RawMessage `json:"from"`
		To   json.RawMessage `json:"to"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*c = FieldChange{}
		return nil
	}
	c.From = coerceString(raw.From)
	c.To = coerceString(raw.To)
	return nil
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	switch raw[0] {
	case '{', '[', 'n':
		return ""
	}
	return string(raw)
}
