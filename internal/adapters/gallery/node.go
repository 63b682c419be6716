package gallery

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/core/ports"
)

// NodeID is the unique identifier for the gallery watcher Graft node.
const NodeID graft.ID = "adapter.gallery"

func init() {
	graft.Register(graft.Node[ports.GalleryWatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.GalleryWatcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})
}
