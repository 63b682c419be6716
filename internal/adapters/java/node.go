package java

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/config"
	"go.trai.ch/ember/internal/adapters/httpdl"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/adapters/store"
	"go.trai.ch/ember/internal/core/ports"
)

// NodeID is the unique identifier for the Java locator Graft node.
const NodeID graft.ID = "adapter.java"

func init() {
	graft.Register(graft.Node[ports.JavaLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, store.NodeID, httpdl.NodeID, config.NodeID},
		Run: func(ctx context.Context) (ports.JavaLocator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			st, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, st, fetcher, settings), nil
		},
	})
}
