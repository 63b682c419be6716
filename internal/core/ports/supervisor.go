package ports

import (
	"context"
	"time"

	"go.trai.ch/ember/internal/core/domain"
)

// SpawnSpec describes the process the supervisor should start.
type SpawnSpec struct {
	JavaPath   string
	Args       []string
	WorkingDir string
	Env        []string
	ProfileID  string
}

// Process is a handle on a supervised game process.
type Process interface {
	// PID returns the OS process id.
	PID() int
	// State returns the current lifecycle state.
	State() domain.ProcessState
	// Started blocks up to grace and reports whether the process was still
	// alive at the end of the window. It is a caller-facing heuristic only.
	Started(grace time.Duration) bool
	// Wait blocks until the process exits and returns its exit code.
	Wait(ctx context.Context) (int, error)
	// Kill terminates the process.
	Kill() error
}

// Supervisor spawns and observes game processes, streaming their output and
// emitting lifecycle signals.
//
//go:generate mockgen -source=supervisor.go -destination=mocks/mock_supervisor.go -package=mocks
type Supervisor interface {
	// Spawn starts the process. It fails fast when the executable cannot be
	// launched; everything after a successful spawn is reported through the
	// progress sink and the returned handle.
	Spawn(ctx context.Context, spec SpawnSpec) (Process, error)
}
