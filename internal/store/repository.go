package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pcte/equiptrack/internal/model"
)

// Patch is a shallow JSON merge: present keys overwrite the target's fields,
// absent keys are left alone. Sub-objects are replaced wholesale, not merged.
type Patch map[string]json.RawMessage

// Repository owns the single live AppState. Every operation applies an
// in-memory change, persists the full state through the adapter, notifies
// subscribers with the new state, and returns it. The internal mutex is held
// across the save, so writes against the same repository are serialized;
// subscribers are only notified after persistence succeeds.
type Repository struct {
	mu          sync.Mutex
	adapter     Adapter
	state       *model.AppState
	subscribers map[int]func(*model.AppState)
	nextSubID   int
}

// NewRepository creates a repository seeded with the default state. Call
// Hydrate to replace it with the adapter's stored snapshot.
func NewRepository(adapter Adapter) *Repository {
	return &Repository{
		adapter:     adapter,
		state:       model.BuildDefaultState(model.StateVersion),
		subscribers: make(map[int]func(*model.AppState)),
	}
}

// Hydrate loads state from the adapter (which applies migration) and replaces
// the in-memory state wholesale. A hydrate racing a pending mutation
// overwrites its unsaved changes; callers serialize the two if that matters.
func (r *Repository) Hydrate(ctx context.Context) (*model.AppState, error) {
	loaded, err := r.adapter.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	r.mu.Lock()
	r.state = loaded
	r.mu.Unlock()
	return loaded, nil
}

// State returns the live state reference. Callers must treat it as read-only
// and mutate only through repository operations.
func (r *Repository) State() *model.AppState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers a callback invoked with the new state after every
// successful mutation. The returned function removes the subscription.
func (r *Repository) Subscribe(fn func(*model.AppState)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subscribers, id)
	}
}

// Mutate is the generic primitive all operations build on: apply fn to the
// live state, persist, notify. If the save fails the in-memory change is kept
// and the error propagated; no notification is emitted.
func (r *Repository) Mutate(ctx context.Context, fn func(*model.AppState)) (*model.AppState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r.state)
	if err := r.adapter.Save(ctx, r.state); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}
	for _, subscriber := range r.subscribers {
		subscriber(r.state)
	}
	return r.state, nil
}

// AddEquipment appends a new equipment record with a freshly generated id.
func (r *Repository) AddEquipment(ctx context.Context, payload model.Equipment) (*model.AppState, error) {
	payload.ID = uuid.NewString()
	return r.Mutate(ctx, func(s *model.AppState) {
		s.Equipment = append(s.Equipment, payload)
	})
}

// UpdateEquipment shallow-merges patch onto the equipment record with the
// given id. An unknown id is a no-op that still persists.
func (r *Repository) UpdateEquipment(ctx context.Context, id string, patch Patch) (*model.AppState, error) {
	return r.Mutate(ctx, func(s *model.AppState) {
		for i := range s.Equipment {
			if s.Equipment[i].ID == id {
				mergePatch(&s.Equipment[i], patch)
				return
			}
		}
	})
}

// ImportEquipment bulk-appends pre-built records; the caller supplies ids.
func (r *Repository) ImportEquipment(ctx context.Context, rows []model.Equipment) (*model.AppState, error) {
	return r.Mutate(ctx, func(s *model.AppState) {
		s.Equipment = append(s.Equipment, rows...)
	})
}

// RecordMove prepends a new move with a freshly generated id. New moves are
// always the logical head of the log.
func (r *Repository) RecordMove(ctx context.Context, payload model.Move) (*model.AppState, error) {
	payload.ID = uuid.NewString()
	return r.Mutate(ctx, func(s *model.AppState) {
		s.Moves = append([]model.Move{payload}, s.Moves...)
	})
}

// RecordReceipt merges receipt data onto the move with the given id, in
// place. This is the one sanctioned in-place mutation of history, recording
// that goods were received.
func (r *Repository) RecordReceipt(ctx context.Context, moveID string, receipt Patch) (*model.AppState, error) {
	return r.Mutate(ctx, func(s *model.AppState) {
		for i := range s.Moves {
			if s.Moves[i].ID == moveID {
				mergePatch(&s.Moves[i], receipt)
				return
			}
		}
	})
}

// RecordCalibration records a move with the calibration type.
func (r *Repository) RecordCalibration(ctx context.Context, payload model.Move) (*model.AppState, error) {
	payload.Type = model.MoveTypeCalibration
	return r.RecordMove(ctx, payload)
}

// RecordSubscriptionUpdate records a move with the subscription-updated type.
func (r *Repository) RecordSubscriptionUpdate(ctx context.Context, payload model.Move) (*model.AppState, error) {
	payload.Type = model.MoveTypeSubscriptionUpdate
	return r.RecordMove(ctx, payload)
}

// AddCorrection appends to the corrections log. Moves and equipment are never
// touched; the effective view is derived at read time.
func (r *Repository) AddCorrection(ctx context.Context, payload model.Correction) (*model.AppState, error) {
	if payload.ID == "" {
		payload.ID = uuid.NewString()
	}
	return r.Mutate(ctx, func(s *model.AppState) {
		s.Corrections = append(s.Corrections, payload)
	})
}

// ArchiveHistory marks every move archived. Re-archiving is a no-op in
// effect.
func (r *Repository) ArchiveHistory(ctx context.Context) (*model.AppState, error) {
	return r.Mutate(ctx, func(s *model.AppState) {
		for i := range s.Moves {
			s.Moves[i].Archived = true
		}
	})
}

// mergePatch shallow-merges patch onto target through its JSON form. Decode
// errors on patched fields are ignored; the unaffected fields keep their
// values, per the coerce-don't-fail approach taken across snapshot handling.
func mergePatch[T any](target *T, patch Patch) {
	if len(patch) == 0 {
		return
	}
	encoded, err := json.Marshal(target)
	if err != nil {
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return
	}
	for key, value := range patch {
		fields[key] = value
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return
	}
	var out T
	_ = json.Unmarshal(merged, &out)
	*target = out
}
