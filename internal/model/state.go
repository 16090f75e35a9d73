package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StateVersion is the current snapshot schema version.
const StateVersion = 2

// DefaultLocations is the fixed set of physical locations used when a
// snapshot carries none.
var DefaultLocations = []string{
	"Perth",
	"Melbourne",
	"Brisbane",
	"Sydney",
	"New Zealand",
}

// AppState is the canonical application state: equipment records, the
// append-only move log (newest first), the audit-correction log and the
// allowed physical locations. Unknown top-level fields from a stored snapshot
// are preserved in Extra and written back on save.
type AppState struct {
	Equipment     []Equipment  `json:"equipment"`
	Moves         []Move       `json:"moves"`
	Corrections   []Correction `json:"corrections"`
	Locations     []string     `json:"locations"`
	SchemaVersion int          `json:"schemaVersion"`
	StateVersion  int          `json:"stateVersion"`

	Extra map[string]json.RawMessage `json:"-"`
}

// governedStateFields are the snapshot fields always normalized by migration;
// everything else passes through via Extra.
var governedStateFields = map[string]bool{
	"equipment":     true,
	"moves":         true,
	"corrections":   true,
	"locations":     true,
	"schemaVersion": true,
	"stateVersion":  true,
}

// MarshalJSON writes the governed fields over any preserved extra fields.
func (s *AppState) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+6)
	for k, v := range s.Extra {
		out[k] = v
	}

	set := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = b
		return nil
	}

	if err := set("equipment", nonNil(s.Equipment)); err != nil {
		return nil, err
	}
	if err := set("moves", nonNil(s.Moves)); err != nil {
		return nil, err
	}
	if err := set("corrections", nonNil(s.Corrections)); err != nil {
		return nil, err
	}
	if err := set("locations", nonNil(s.Locations)); err != nil {
		return nil, err
	}
	if err := set("schemaVersion", s.SchemaVersion); err != nil {
		return nil, err
	}
	if err := set("stateVersion", s.StateVersion); err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// UnmarshalJSON runs the stored snapshot through migration, so every decode
// path normalizes legacy shapes the same way.
func (s *AppState) UnmarshalJSON(data []byte) error {
	*s = *MigrateSnapshot(data)
	return nil
}

// seedDate returns today shifted by the given number of months, formatted as
// an ISO date.
func seedDate(months int) string {
	return time.Now().AddDate(0, months, 0).Format("2006-01-02")
}

// BuildDefaultState produces the seed dataset: four sample equipment items
// and one seed move. Ids are freshly generated on every call, so seed
// equipment ids are only stable within one generated state.
func BuildDefaultState(schemaVersion int) *AppState {
	projectionKitID := uuid.NewString()
	audioDemoID := uuid.NewString()
	lightingRigID := uuid.NewString()
	portableControlID := uuid.NewString()

	return &AppState{
		Equipment: []Equipment{
			{
				ID:                        projectionKitID,
				Name:                      "Projection kit A",
				Model:                     "Epson EB-PU1007B",
				SerialNumber:              "PKA-2024-0198",
				PurchaseDate:              seedDate(-28),
				Location:                  "Perth",
				Status:                    StatusAvailable,
				LastMoved:                 "2024-05-14 09:10",
				CalibrationRequired:       true,
				CalibrationIntervalMonths: 12,
				LastCalibrationDate:       seedDate(-3),
			},
			{
				ID:                        audioDemoID,
				Name:                      "Audio demo case",
				Model:                     "Pelican 1510",
				SerialNumber:              "ADC-2023-4421",
				PurchaseDate:              seedDate(-18),
				Location:                  "Melbourne",
				Status:                    StatusOnDemo,
				LastMoved:                 "2024-05-12 16:45",
				CalibrationIntervalMonths: 12,
				LastCalibrationDate:       seedDate(-6),
			},
			{
				ID:                        lightingRigID,
				Name:                      "Lighting rig",
				Model:                     "Aputure LS 600X",
				SerialNumber:              "LR-2022-7785",
				PurchaseDate:              seedDate(-36),
				Location:                  "Perth",
				Status:                    StatusOnHire,
				LastMoved:                 "2024-05-10 11:00",
				CalibrationRequired:       true,
				CalibrationIntervalMonths: 12,
				LastCalibrationDate:       seedDate(-14),
			},
			{
				ID:                        portableControlID,
				Name:                      "Portable control unit",
				Model:                     "Q-SYS Core 8 Flex",
				SerialNumber:              "PCU-2024-1043",
				PurchaseDate:              seedDate(-12),
				Location:                  "Sydney",
				Status:                    StatusInService,
				LastMoved:                 "2024-05-11 13:25",
				CalibrationRequired:       true,
				CalibrationIntervalMonths: 12,
				LastCalibrationDate:       seedDate(-10),
			},
		},
		Moves: []Move{
			{
				ID:          uuid.NewString(),
				EquipmentID: lightingRigID,
				EquipmentSnapshot: &EquipmentSnapshot{
					Name:         "Lighting rig",
					Model:        "Aputure LS 600X",
					SerialNumber: "LR-2022-7785",
				},
				Type:      MoveTypeMove,
				Text:      "Lighting rig moved to Perth with status On hire (Client demo).",
				Timestamp: "2024-05-10T11:00:00.000Z",
			},
		},
		Corrections:   []Correction{},
		Locations:     append([]string(nil), DefaultLocations...),
		SchemaVersion: schemaVersion,
		StateVersion:  schemaVersion,
	}
}
