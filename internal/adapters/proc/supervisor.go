package proc

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Supervisor = (*Supervisor)(nil)

// StartGrace is the default "did it start" heuristic window.
const StartGrace = 1500 * time.Millisecond

// CrashScanner inspects a log file for known crash signatures after an
// abnormal exit. A nil report means nothing was recognized.
type CrashScanner interface {
	ScanFile(path string) *domain.CrashReport
}

// Supervisor spawns game processes and streams their output as events.
type Supervisor struct {
	logger  ports.Logger
	sink    ports.ProgressSink
	scanner CrashScanner
}

// NewSupervisor creates a new Supervisor. scanner may be nil to disable
// crash scanning.
func NewSupervisor(logger ports.Logger, sink ports.ProgressSink, scanner CrashScanner) *Supervisor {
	return &Supervisor{logger: logger, sink: sink, scanner: scanner}
}

// Spawn starts the process. Spawn failure is the only synchronous failure
// mode; once running, output and lifecycle flow through the progress sink.
func (s *Supervisor) Spawn(ctx context.Context, spec ports.SpawnSpec) (ports.Process, error) {
	cmd := exec.Command(spec.JavaPath, spec.Args...) //nolint:gosec // java path resolved by the locator
	cmd.Dir = spec.WorkingDir
	cmd.Env = append(os.Environ(), spec.Env...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrSpawnFailed, err.Error())
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrSpawnFailed, err.Error())
	}

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrSpawnFailed, err.Error()), "java", spec.JavaPath)
	}

	p := &process{
		cmd:   cmd,
		pid:   cmd.Process.Pid,
		state: domain.ProcessRunning,
		done:  make(chan struct{}),
	}

	s.sink.Lifecycle(domain.LifecycleEvent{ProfileID: spec.ProfileID, Running: true, PID: p.pid})

	go s.observe(spec, p, stdout, stderr)

	_ = ctx // spawn is synchronous; the process deliberately outlives the call
	return p, nil
}

// observe pumps both output streams and waits for exit. Lines are
// interleaved between streams with no cross-stream ordering guarantee.
func (s *Supervisor) observe(spec ports.SpawnSpec, p *process, stdout, stderr io.Reader) {
	var g errgroup.Group
	g.Go(func() error {
		s.pump(spec.ProfileID, domain.StreamStdout, stdout)
		return nil
	})
	g.Go(func() error {
		s.pump(spec.ProfileID, domain.StreamStderr, stderr)
		return nil
	})
	_ = g.Wait()

	err := p.cmd.Wait()
	code := 0
	if err != nil {
		code = -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
	}

	p.mu.Lock()
	p.state = domain.ProcessExited
	p.exitCode = code
	p.mu.Unlock()
	close(p.done)

	s.sink.Lifecycle(domain.LifecycleEvent{ProfileID: spec.ProfileID, Running: false})

	if code != 0 {
		s.scanCrash(spec)
	}
}

func (s *Supervisor) pump(profileID string, stream domain.OutputStream, r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		s.sink.Output(domain.OutputEvent{
			ProfileID: profileID,
			Line:      StripTimestamp(scanner.Text()),
			Stream:    stream,
			Timestamp: time.Now(),
		})
	}
}

// scanCrash best-effort scans the most recent log for known signatures. The
// raw failure is already reported; a recognized signature only augments it.
func (s *Supervisor) scanCrash(spec ports.SpawnSpec) {
	if s.scanner == nil {
		return
	}
	logPath := filepath.Join(spec.WorkingDir, "logs", "latest.log")
	report := s.scanner.ScanFile(logPath)
	if report == nil {
		return
	}
	report.ProfileID = spec.ProfileID
	s.sink.Crash(*report)
}

type process struct {
	cmd *exec.Cmd
	pid int

	mu       sync.Mutex
	state    domain.ProcessState
	exitCode int

	done chan struct{}
}

func (p *process) PID() int {
	return p.pid
}

func (p *process) State() domain.ProcessState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Started blocks up to grace and reports whether the process was still
// alive afterwards. It informs caller-level fallback only, never the state
// machine.
func (p *process) Started(grace time.Duration) bool {
	select {
	case <-p.done:
		return false
	case <-time.After(grace):
		return true
	}
}

func (p *process) Wait(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, zerr.Wrap(ctx.Err(), "wait canceled")
	case <-p.done:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode, nil
}

func (p *process) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}
