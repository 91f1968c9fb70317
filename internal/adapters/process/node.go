package process

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

// RunnerNodeID is the unique identifier for the process runner Graft node.
const RunnerNodeID graft.ID = "adapter.process_runner"

// ProberNodeID is the unique identifier for the prober Graft node.
const ProberNodeID graft.ID = "adapter.prober"

func init() {
	graft.Register(graft.Node[ports.ProcessRunner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessRunner, error) {
			return NewRunner(), nil
		},
	})

	graft.Register(graft.Node[ports.Prober]{
		ID:        ProberNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Prober, error) {
			return NewProber(), nil
		},
	})
}
