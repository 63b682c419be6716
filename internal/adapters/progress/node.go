package progress

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/core/ports"
)

// NodeID is the unique identifier for the progress sink Graft node.
const NodeID graft.ID = "adapter.progress"

func init() {
	graft.Register(graft.Node[ports.ProgressSink]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProgressSink, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFanout(NewLogSink(log)), nil
		},
	})
}
