package app

import (
	"context"
	"fmt"

	"github.com/grindlemire/graft"

	"github.com/ridgewaylabs/dagrun/internal/adapters/config"
	"github.com/ridgewaylabs/dagrun/internal/adapters/logger"
	"github.com/ridgewaylabs/dagrun/internal/adapters/process"
	"github.com/ridgewaylabs/dagrun/internal/core/ports"
)

// ComponentsNodeID is the unique identifier for the root Components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: false,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID, process.RunnerNodeID},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			concreteLoader, ok := loader.(*config.Loader)
			if !ok {
				return nil, fmt.Errorf("app: config loader node returned unexpected type %T", loader)
			}
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:           New(log, concreteLoader, runner),
				Logger:        log,
				ConfigLoader:  concreteLoader,
				ProcessRunner: runner,
			}, nil
		},
	})
}
