package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pcte/equiptrack/internal/model"
)

// MemoryAdapter keeps the snapshot in memory. Used by tests and as the
// reference Adapter implementation. Snapshots are stored in their JSON form,
// so Load returns an independent copy and always goes through migration,
// exactly like the persistent adapters.
type MemoryAdapter struct {
	mu  sync.Mutex
	raw []byte
}

// NewMemoryAdapter creates an empty in-memory adapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

// Load returns the stored snapshot migrated to canonical shape, or the seeded
// default state when nothing has been saved yet.
func (a *MemoryAdapter) Load(_ context.Context) (*model.AppState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.raw == nil {
		return model.BuildDefaultState(model.StateVersion), nil
	}
	return model.MigrateSnapshot(a.raw), nil
}

// Save stores the snapshot's JSON encoding.
func (a *MemoryAdapter) Save(_ context.Context, state *model.AppState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	a.mu.Lock()
	a.raw = raw
	a.mu.Unlock()
	return nil
}

// Clear discards the stored snapshot.
func (a *MemoryAdapter) Clear(_ context.Context) error {
	a.mu.Lock()
	a.raw = nil
	a.mu.Unlock()
	return nil
}
