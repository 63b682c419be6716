// Package proc implements process execution and supervision using os/exec.
package proc

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run executes the command in dir and blocks until it exits, streaming its
// output to the logger line by line.
func (e *Executor) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // caller provides the command
	cmd.Dir = dir
	cmd.Env = os.Environ()
	cmd.Stdout = &logWriter{logger: e.logger}
	cmd.Stderr = &logWriter{logger: e.logger, warn: true}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// logWriter forwards complete lines to the logger, buffering partial writes
// until a newline arrives.
type logWriter struct {
	logger ports.Logger
	warn   bool
	buf    strings.Builder
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)

	for {
		text := w.buf.String()
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			break
		}
		line := text[:idx]
		w.buf.Reset()
		w.buf.WriteString(text[idx+1:])

		if line == "" {
			continue
		}
		if w.warn {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
