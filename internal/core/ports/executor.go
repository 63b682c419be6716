package ports

import "context"

// Executor runs external helper commands, streaming their output to the log.
// It is used for loader families that ship their own Java-based installer.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command in dir and blocks until it exits. A non-zero
	// exit is an error.
	Run(ctx context.Context, dir, name string, args ...string) error
}
