package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"

	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: false,
		Run: func(_ context.Context) (ports.Watcher, error) {
			return NewWatcher()
		},
	})
}

// DefaultDebounceWindow is the coalescing delay for the workspace's
// pending-update loop: new notifications mutate the pending record
// without re-arming if one is already in flight.
const DefaultDebounceWindow = 150 * time.Millisecond
