package store

import (
	"context"

	"github.com/pcte/equiptrack/internal/model"
)

// Adapter is the pluggable storage contract. Load applies snapshot migration
// itself, so the repository always receives canonical-shaped state. All
// operations may block on I/O; none are cancellable once started beyond
// context checks.
type Adapter interface {
	Load(ctx context.Context) (*model.AppState, error)
	Save(ctx context.Context, state *model.AppState) error
	Clear(ctx context.Context) error
}
