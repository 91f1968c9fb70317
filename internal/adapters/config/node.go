package config

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/ridgewaylabs/dagrun/internal/adapters/process"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: false,
		DependsOn: []graft.ID{process.ProberNodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			prober, err := graft.Dep[ports.Prober](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(prober, false), nil
		},
	})
}
