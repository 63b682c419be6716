package proc_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/adapters/logger"
	"go.trai.ch/ember/internal/adapters/proc"
	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
	"go.trai.ch/ember/internal/engine/crash"
)

// captureSink records every event the supervisor emits.
type captureSink struct {
	mu        sync.Mutex
	lifecycle []domain.LifecycleEvent
	output    []domain.OutputEvent
	crashes   []domain.CrashReport
}

func (s *captureSink) Progress(domain.ProgressEvent) {}

func (s *captureSink) Lifecycle(event domain.LifecycleEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lifecycle = append(s.lifecycle, event)
}

func (s *captureSink) Output(event domain.OutputEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = append(s.output, event)
}

func (s *captureSink) Crash(report domain.CrashReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crashes = append(s.crashes, report)
}

func (s *captureSink) lines(stream domain.OutputStream) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, event := range s.output {
		if event.Stream == stream {
			out = append(out, event.Line)
		}
	}
	return out
}

func TestStripTimestamp(t *testing.T) {
	assert.Equal(t, "[Render thread/INFO]: Hello",
		proc.StripTimestamp("[14:03:04.930] [Render thread/INFO]: Hello"))
	assert.Equal(t, "[Render thread/INFO]: Hello",
		proc.StripTimestamp("[2024-06-01 14:03:04] [Render thread/INFO]: Hello"))
	// No colon in the bracket: not a timestamp.
	assert.Equal(t, "[12345] counted", proc.StripTimestamp("[12345] counted"))
	assert.Equal(t, "plain line", proc.StripTimestamp("plain line"))
}

func TestSupervisor_StreamsOutputAndExit(t *testing.T) {
	sink := &captureSink{}
	sup := proc.NewSupervisor(logger.New(), sink, nil)

	p, err := sup.Spawn(context.Background(), ports.SpawnSpec{
		JavaPath:   "/bin/sh",
		Args:       []string{"-c", "echo '[14:03:04.930] starting'; echo oops >&2"},
		WorkingDir: t.TempDir(),
		ProfileID:  "main",
	})
	require.NoError(t, err)
	require.Positive(t, p.PID())

	code, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, domain.ProcessExited, p.State())

	assert.Equal(t, []string{"starting"}, sink.lines(domain.StreamStdout))
	assert.Equal(t, []string{"oops"}, sink.lines(domain.StreamStderr))

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.lifecycle, 2)
	assert.True(t, sink.lifecycle[0].Running)
	assert.Equal(t, p.PID(), sink.lifecycle[0].PID)
	assert.False(t, sink.lifecycle[1].Running)
	assert.Empty(t, sink.crashes)
}

func TestSupervisor_SpawnFailure(t *testing.T) {
	sup := proc.NewSupervisor(logger.New(), &captureSink{}, nil)

	_, err := sup.Spawn(context.Background(), ports.SpawnSpec{
		JavaPath:  "/nonexistent/java",
		Args:      []string{"-version"},
		ProfileID: "main",
	})
	require.ErrorIs(t, err, domain.ErrSpawnFailed)
}

func TestSupervisor_CrashReportOnAbnormalExit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "latest.log"),
		[]byte("java.lang.OutOfMemoryError: Java heap space"), 0o644))

	sink := &captureSink{}
	sup := proc.NewSupervisor(logger.New(), sink, crash.New())

	p, err := sup.Spawn(context.Background(), ports.SpawnSpec{
		JavaPath:   "/bin/sh",
		Args:       []string{"-c", "exit 1"},
		WorkingDir: dir,
		ProfileID:  "main",
	})
	require.NoError(t, err)

	code, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.crashes, 1)
	assert.Equal(t, "Out of memory", sink.crashes[0].Title)
	assert.Equal(t, "main", sink.crashes[0].ProfileID)
}

func TestProcess_Started(t *testing.T) {
	sup := proc.NewSupervisor(logger.New(), &captureSink{}, nil)

	p, err := sup.Spawn(context.Background(), ports.SpawnSpec{
		JavaPath:   "/bin/sh",
		Args:       []string{"-c", "sleep 2"},
		WorkingDir: t.TempDir(),
		ProfileID:  "main",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Kill() })

	assert.True(t, p.Started(100*time.Millisecond))

	quick, err := sup.Spawn(context.Background(), ports.SpawnSpec{
		JavaPath:   "/bin/sh",
		Args:       []string{"-c", "exit 3"},
		WorkingDir: t.TempDir(),
		ProfileID:  "main",
	})
	require.NoError(t, err)
	assert.False(t, quick.Started(2*time.Second))
}

func TestExecutor_Run(t *testing.T) {
	executor := proc.NewExecutor(logger.New())

	require.NoError(t, executor.Run(context.Background(), t.TempDir(), "/bin/sh", "-c", "echo hello"))

	err := executor.Run(context.Background(), t.TempDir(), "/bin/sh", "-c", "exit 7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestProcess_WaitCanceled(t *testing.T) {
	sup := proc.NewSupervisor(logger.New(), &captureSink{}, nil)

	p, err := sup.Spawn(context.Background(), ports.SpawnSpec{
		JavaPath:   "/bin/sh",
		Args:       []string{"-c", "sleep 5"},
		WorkingDir: t.TempDir(),
		ProfileID:  "main",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Kill() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = p.Wait(ctx)
	require.Error(t, err)
}
