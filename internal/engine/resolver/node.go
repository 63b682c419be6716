package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/store"
	"go.trai.ch/ember/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			st, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			return New(st), nil
		},
	})
}
