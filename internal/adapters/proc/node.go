package proc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/adapters/progress"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/crash"
)

const (
	// ExecutorNodeID is the unique identifier for the executor Graft node.
	ExecutorNodeID graft.ID = "adapter.proc.executor"
	// SupervisorNodeID is the unique identifier for the supervisor Graft node.
	SupervisorNodeID graft.ID = "adapter.proc.supervisor"
)

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})

	graft.Register(graft.Node[ports.Supervisor]{
		ID:        SupervisorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, progress.NodeID, crash.NodeID},
		Run: func(ctx context.Context) (ports.Supervisor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			sink, err := graft.Dep[ports.ProgressSink](ctx)
			if err != nil {
				return nil, err
			}
			analyzer, err := graft.Dep[*crash.Analyzer](ctx)
			if err != nil {
				return nil, err
			}
			return NewSupervisor(log, sink, analyzer), nil
		},
	})
}
