package model

// Move types.
const (
	MoveTypeMove               = "move"
	MoveTypeCalibration        = "calibration"
	MoveTypeSubscriptionUpdate = "subscription_updated"
	MoveTypeDetailsUpdate      = "details_updated"
	MoveTypeConditionReference = "condition_reference_updated"
	MoveTypeReceived           = "received"
	MoveTypeCondition          = "condition"
)

// Move is an entry in the append-only move log. Moves are never edited in
// place except by receipt recording, which augments a move with shipping and
// received fields. New moves are prepended, so the head of the log is the
// newest entry.
type Move struct {
	ID                string             `json:"id"`
	EquipmentID       string             `json:"equipmentId,omitempty"`
	EquipmentSnapshot *EquipmentSnapshot `json:"equipmentSnapshot,omitempty"`
	Type              string             `json:"type,omitempty"`
	Text              string             `json:"text,omitempty"`
	FromLocation      string             `json:"fromLocation,omitempty"`
	ToLocation        string             `json:"toLocation,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	Timestamp         string             `json:"timestamp,omitempty"`
	Condition         *Condition         `json:"condition,omitempty"`
	Shipping          *Shipping          `json:"shipping,omitempty"`
	ReceivedAt        string             `json:"receivedAt,omitempty"`
	ReceivedBy        string             `json:"receivedBy,omitempty"`
	Archived          bool               `json:"archived,omitempty"`
	DeletedAt         string             `json:"deletedAt,omitempty"`
}

// EquipmentSnapshot captures basic equipment details at move time, so the log
// stays readable after an item is renamed or removed.
type EquipmentSnapshot struct {
	Name         string `json:"name,omitempty"`
	Model        string `json:"model,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
}

// Shipping is the optional shipping sub-record of a move.
type Shipping struct {
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	ShipDate       string `json:"shipDate,omitempty"`
	EtaDate        string `json:"etaDate,omitempty"`
	DeliveredAt    string `json:"deliveredAt,omitempty"`
	ReceivedAt     string `json:"receivedAt,omitempty"`
	ReceivedBy     string `json:"receivedBy,omitempty"`
}

// Condition is an inspection result embedded in a move.
type Condition struct {
	Rating       string  `json:"rating,omitempty"`
	ContentsOk   TriBool `json:"contentsOk"`
	FunctionalOk TriBool `json:"functionalOk"`
	CheckedAt    string  `json:"checkedAt,omitempty"`
	CheckedBy    string  `json:"checkedBy,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// Condition ratings.
const (
	RatingExcellent      = "Excellent"
	RatingGood           = "Good"
	RatingFair           = "Fair"
	RatingNeedsAttention = "Needs attention"
	RatingMissing        = "Missing"
	RatingFault          = "Fault"
	RatingUnserviceable  = "Unserviceable"
)

// ConditionRatings lists the allowed condition ratings.
var ConditionRatings = []string{
	RatingExcellent,
	RatingGood,
	RatingFair,
	RatingNeedsAttention,
	RatingMissing,
	RatingFault,
	RatingUnserviceable,
}

// Clone returns a deep copy of the move.
func (m Move) Clone() Move {
	out := m
	if m.EquipmentSnapshot != nil {
		snap := *m.EquipmentSnapshot
		out.EquipmentSnapshot = &snap
	}
	if m.Condition != nil {
		cond := *m.Condition
		out.Condition = &cond
	}
	if m.Shipping != nil {
		ship := *m.Shipping
		out.Shipping = &ship
	}
	return out
}
