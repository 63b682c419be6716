package httpdl

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/config"
	"go.trai.ch/ember/internal/adapters/fs"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/core/ports"
)

// NodeID is the unique identifier for the fetcher Graft node.
const NodeID graft.ID = "adapter.httpdl"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.VerifierNodeID, logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(verifier, log, settings.DownloadConcurrency), nil
		},
	})
}
