package model

import (
	"regexp"
	"strings"
)

// Equipment represents a tracked physical item (individually tracked, not
// quantity-based). Date fields are ISO date strings or empty.
type Equipment struct {
	ID                        string              `json:"id"`
	Name                      string              `json:"name"`
	Model                     string              `json:"model,omitempty"`
	SerialNumber              string              `json:"serialNumber,omitempty"`
	PurchaseDate              string              `json:"purchaseDate,omitempty"`
	Location                  string              `json:"location,omitempty"`
	Status                    string              `json:"status,omitempty"`
	LastMoved                 string              `json:"lastMoved,omitempty"`
	CalibrationRequired       bool                `json:"calibrationRequired"`
	CalibrationIntervalMonths int                 `json:"calibrationIntervalMonths,omitempty"`
	LastCalibrationDate       string              `json:"lastCalibrationDate,omitempty"`
	SubscriptionRequired      bool                `json:"subscriptionRequired"`
	SubscriptionRenewalDate   string              `json:"subscriptionRenewalDate,omitempty"`
	LastConditionCheck        *LastConditionCheck `json:"lastConditionCheck,omitempty"`
}

// LastConditionCheck is the derived "current condition" of an equipment item,
// cached on the record. It is recomputed from the move log, never edited
// directly.
type LastConditionCheck struct {
	Result    *Condition `json:"result"`
	CheckedAt string     `json:"checkedAt"`
	MoveID    string     `json:"moveId"`
}

// Editable equipment statuses. StatusInTransit is derived from shipping state
// and never directly settable.
const (
	StatusAvailable   = "Available"
	StatusOnDemo      = "On demo"
	StatusOnHire      = "On hire"
	StatusInService   = "In service / repair"
	StatusQuarantined = "Quarantined"
	StatusInTransit   = "In transit"
)

// EditableStatuses lists the statuses a user may set directly.
var EditableStatuses = []string{
	StatusAvailable,
	StatusOnDemo,
	StatusOnHire,
	StatusInService,
	StatusQuarantined,
}

var calibrationStatusPattern = regexp.MustCompile(`(?i)calibration`)

// NormalizeStatus coerces a stored status to a member of the editable set.
// Legacy "calibration" statuses map to Quarantined, an "on hire" location
// implies On hire, anything else falls back to Available.
func NormalizeStatus(rawStatus, rawLocation string) string {
	status := strings.TrimSpace(rawStatus)
	if status != "" && calibrationStatusPattern.MatchString(status) {
		return StatusQuarantined
	}
	for _, s := range EditableStatuses {
		if status == s {
			return status
		}
	}
	if strings.EqualFold(strings.TrimSpace(rawLocation), "on hire") {
		return StatusOnHire
	}
	return StatusAvailable
}
