package launch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/adapters/store"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/resolver"
)

// NodeID is the unique identifier for the launch assembler Graft node.
const NodeID graft.ID = "engine.launch"

func init() {
	graft.Register(graft.Node[*Assembler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, store.NodeID, resolver.NodeID},
		Run: func(ctx context.Context) (*Assembler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			st, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewAssembler(log, st, res), nil
		},
	})
}
