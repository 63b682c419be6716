package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/httpdl"
	"go.trai.ch/ember/internal/adapters/java"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/adapters/proc"
	"go.trai.ch/ember/internal/adapters/progress"
	"go.trai.ch/ember/internal/adapters/store"
	"go.trai.ch/ember/internal/adapters/telemetry"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/resolver"
)

// NodeID is the unique identifier for the installer registry Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			store.NodeID,
			httpdl.NodeID,
			progress.NodeID,
			telemetry.NodeID,
			resolver.NodeID,
			proc.ExecutorNodeID,
			java.NodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
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
			sink, err := graft.Dep[ports.ProgressSink](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			javaLocator, err := graft.Dep[ports.JavaLocator](ctx)
			if err != nil {
				return nil, err
			}

			meta := NewMeta()
			engine := NewEngine(log, st, fetcher, meta, sink, tracer)
			recon := NewReconciler(log, st, fetcher, res, sink)

			return NewRegistry(
				engine,
				NewFabric(log, st, meta, engine, recon),
				NewQuilt(log, st, meta, engine, recon),
				NewNeoForge(log, st, fetcher, meta, engine, recon, executor, javaLocator, sink),
				NewForge(),
			), nil
		},
	})
}
