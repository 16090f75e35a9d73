// Package condition computes the "last known condition" of an equipment item
// from its move log history. Derivation is pure; the cached
// Equipment.LastConditionCheck is only ever written by re-running it.
package condition

import (
	"strings"

	"github.com/pcte/equiptrack/internal/model"
)

// NotChecked is the display label for equipment with no usable condition
// check on record.
const NotChecked = "Not checked"

// NormalizeRating returns the rating if it is a member of the allowed set,
// else blank.
func NormalizeRating(value string) string {
	text := strings.TrimSpace(value)
	for _, rating := range model.ConditionRatings {
		if text == rating {
			return text
		}
	}
	return ""
}

// Normalize coerces a condition payload to its canonical form: the rating
// restricted to the allowed set, checkedAt blank-trimmed. A payload with no
// rating, no resolved checklist flags and no checkedAt is unusable and
// normalizes to nil.
func Normalize(c *model.Condition) *model.Condition {
	if c == nil {
		return nil
	}

	rating := NormalizeRating(c.Rating)
	checkedAt := c.CheckedAt
	if strings.TrimSpace(checkedAt) == "" {
		checkedAt = ""
	}

	if rating == "" && !c.ContentsOk.Known && !c.FunctionalOk.Known && checkedAt == "" {
		return nil
	}

	return &model.Condition{
		Rating:       rating,
		ContentsOk:   c.ContentsOk,
		FunctionalOk: c.FunctionalOk,
		CheckedAt:    checkedAt,
		CheckedBy:    c.CheckedBy,
		Notes:        c.Notes,
	}
}

// isCheckEntry reports whether a log entry counts as a condition check: it is
// explicitly typed "condition" or carries a normalizable condition payload.
func isCheckEntry(entry model.Move) bool {
	if entry.Type == model.MoveTypeCondition {
		return true
	}
	return Normalize(entry.Condition) != nil
}

// checkTimestamp is the effective timestamp of a check entry: the embedded
// condition's checkedAt when non-blank, else the entry's own timestamp.
func checkTimestamp(entry model.Move) string {
	if entry.Condition != nil && strings.TrimSpace(entry.Condition.CheckedAt) != "" {
		return entry.Condition.CheckedAt
	}
	return entry.Timestamp
}

// DeriveLastCheck selects the condition check with the latest parseable
// timestamp from one item's log entries. Entries whose timestamp fails to
// parse never win over one that does and never replace a current best. Soft
// deleted entries are skipped. Returns nil when nothing usable is found.
func DeriveLastCheck(logs []model.Move) *model.LastConditionCheck {
	var latest *model.Move
	for i := range logs {
		entry := &logs[i]
		if entry.DeletedAt != "" || !isCheckEntry(*entry) {
			continue
		}
		candidateTime, ok := model.ParseTimestamp(checkTimestamp(*entry))
		if !ok {
			continue
		}
		if latest == nil {
			latest = entry
			continue
		}
		latestTime, ok := model.ParseTimestamp(checkTimestamp(*latest))
		if !ok || candidateTime.After(latestTime) {
			latest = entry
		}
	}
	if latest == nil {
		return nil
	}

	payload := model.Condition{CheckedAt: checkTimestamp(*latest)}
	if latest.Condition != nil {
		payload = *latest.Condition
		payload.CheckedAt = checkTimestamp(*latest)
	}
	result := Normalize(&payload)
	if result == nil {
		return nil
	}

	checkedAt := result.CheckedAt
	if checkedAt == "" {
		checkedAt = checkTimestamp(*latest)
	}
	return &model.LastConditionCheck{
		Result:    result,
		CheckedAt: checkedAt,
		MoveID:    latest.ID,
	}
}

// LastCheckForEquipment derives the last condition check from the entries
// belonging to one equipment item.
func LastCheckForEquipment(equipmentID string, moves []model.Move) *model.LastConditionCheck {
	if equipmentID == "" {
		return nil
	}
	var logs []model.Move
	for _, mv := range moves {
		if mv.EquipmentID == equipmentID {
			logs = append(logs, mv)
		}
	}
	return DeriveLastCheck(logs)
}

// PillRating returns the display label for an equipment item's condition
// pill: the cached check's rating, or "Not checked". This reads the cached
// LastConditionCheck rather than recomputing; callers re-run DeriveLastCheck
// whenever relevant log entries change.
func PillRating(item model.Equipment) string {
	check := item.LastConditionCheck
	if check == nil || check.Result == nil || check.Result.Rating == "" {
		return NotChecked
	}
	return check.Result.Rating
}

// SyncEquipment re-derives LastConditionCheck for every equipment record in
// the state from the current move log.
func SyncEquipment(state *model.AppState) {
	for i := range state.Equipment {
		state.Equipment[i].LastConditionCheck = LastCheckForEquipment(state.Equipment[i].ID, state.Moves)
	}
}
