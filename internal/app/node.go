package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ember/internal/adapters/gallery"  //nolint:depguard // Wired in app layer
	"go.trai.ch/ember/internal/adapters/java"     //nolint:depguard // Wired in app layer
	"go.trai.ch/ember/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ember/internal/adapters/proc"     //nolint:depguard // Wired in app layer
	"go.trai.ch/ember/internal/adapters/progress" //nolint:depguard // Wired in app layer
	"go.trai.ch/ember/internal/adapters/store"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ember/internal/adapters/telemetry"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/installer"
	"go.trai.ch/ember/internal/engine/launch"
	"go.trai.ch/ember/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the App with the pieces a host needs alongside it.
type Components struct {
	App      *App
	Logger   ports.Logger
	Progress ports.ProgressSink
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			installer.NodeID,
			resolver.NodeID,
			launch.NodeID,
			java.NodeID,
			proc.SupervisorNodeID,
			gallery.NodeID,
			store.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			registry, err := graft.Dep[*installer.Registry](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			asm, err := graft.Dep[*launch.Assembler](ctx)
			if err != nil {
				return nil, err
			}
			locator, err := graft.Dep[ports.JavaLocator](ctx)
			if err != nil {
				return nil, err
			}
			sup, err := graft.Dep[ports.Supervisor](ctx)
			if err != nil {
				return nil, err
			}
			watcher, err := graft.Dep[ports.GalleryWatcher](ctx)
			if err != nil {
				return nil, err
			}
			st, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, settings, registry, res, asm, locator, sup, watcher, st, tracer), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progress.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			sink, err := graft.Dep[ports.ProgressSink](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log, Progress: sink}, nil
		},
	})
}
