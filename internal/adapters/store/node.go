package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/config"
	"go.trai.ch/ember/internal/core/ports"
)

// NodeID is the unique identifier for the store Graft node.
const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Store, error) {
			settings, err := graft.Dep[*ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.DataDir)
		},
	})
}
