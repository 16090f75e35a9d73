// Package audit derives the effective move log by replaying audit corrections
// over the raw move log. The raw log is never altered; corrections are a
// secondary append-only log applied at read time.
package audit

import (
	"sort"

	"github.com/pcte/equiptrack/internal/model"
)

// EffectiveMove is a move as displayed after replaying all applicable
// corrections in chronological order. Audit holds the corrections applied to
// it, in application order.
type EffectiveMove struct {
	model.Move
	Audit []model.Correction `json:"audit"`
}

// fieldSetters maps correction field names to their application logic.
// Unknown field names are no-ops so corrections written by newer code degrade
// safely here, but still land in the audit trail.
var fieldSetters = map[string]func(*EffectiveMove, string){
	"shippingTracking": func(m *EffectiveMove, value string) {
		ship := shippingFor(m)
		ship.TrackingNumber = value
	},
	"receiptDate": func(m *EffectiveMove, value string) {
		// Both denormalized copies stay consistent.
		m.ReceivedAt = value
		ship := shippingFor(m)
		ship.ReceivedAt = value
	},
	"fromLocationId": func(m *EffectiveMove, value string) {
		m.FromLocation = value
	},
	"toLocationId": func(m *EffectiveMove, value string) {
		m.ToLocation = value
	},
	"condition": func(m *EffectiveMove, value string) {
		if m.Condition == nil {
			m.Condition = &model.Condition{}
		}
		m.Condition.Rating = value
	},
	"notes": func(m *EffectiveMove, value string) {
		m.Notes = value
	},
}

func shippingFor(m *EffectiveMove) *model.Shipping {
	if m.Shipping == nil {
		m.Shipping = &model.Shipping{}
	}
	return m.Shipping
}

// ApplyCorrections produces the effective view of the move log. It never
// mutates its inputs. Corrections targeting unknown moves are dropped
// silently, and later corrections for the same field overwrite earlier ones
// (last write wins by timestamp order).
func ApplyCorrections(moves []model.Move, corrections []model.Correction) []EffectiveMove {
	effective := make([]EffectiveMove, len(moves))
	byID := make(map[string]*EffectiveMove, len(moves))
	for i, mv := range moves {
		effective[i] = EffectiveMove{Move: mv.Clone(), Audit: []model.Correction{}}
		byID[mv.ID] = &effective[i]
	}

	for _, correction := range normalizeCorrections(corrections) {
		target, ok := byID[correction.TargetID]
		if !ok {
			continue
		}
		// A correction with nothing to change is not part of any move's
		// audit trail.
		if len(correction.Changes) == 0 {
			continue
		}
		for field, change := range correction.Changes {
			if setter, known := fieldSetters[field]; known {
				setter(target, change.To)
			}
		}
		target.Audit = append(target.Audit, correction)
	}

	return effective
}

// normalizeCorrections keeps only move-targeted corrections with a target id
// and sorts them by parsed timestamp ascending. Unparseable timestamps sort
// as the epoch; ties keep their original relative order.
func normalizeCorrections(corrections []model.Correction) []model.Correction {
	kept := make([]model.Correction, 0, len(corrections))
	for _, c := range corrections {
		if c.TargetType != model.TargetTypeMove || c.TargetID == "" {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return correctionMillis(kept[i]) < correctionMillis(kept[j])
	})
	return kept
}

func correctionMillis(c model.Correction) int64 {
	t, ok := model.ParseTimestamp(c.TS)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}
