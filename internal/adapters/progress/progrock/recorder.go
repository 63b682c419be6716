// Package progrock renders install and launch progress as a live vertex
// tape using the progrock library.
package progrock

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
)

var _ ports.ProgressSink = (*Recorder)(nil)

// Recorder implements ports.ProgressSink on top of a progrock tape. Each
// install stage and each supervised process becomes a vertex.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// Progress records a stage update. The first event for a stage opens its
// vertex; completion or failure closes it.
func (r *Recorder) Progress(event domain.ProgressEvent) {
	v := r.vertex(event.ProfileID+"/"+event.Stage, event.Stage)

	if event.Message != "" {
		_, _ = fmt.Fprintf(v.Stdout(), "%s (%.0f%%)\n", event.Message, event.Percent)
	}

	switch event.Status {
	case domain.ProgressComplete:
		v.Done(nil)
		r.forget(event.ProfileID + "/" + event.Stage)
	case domain.ProgressFailed:
		v.Done(errors.New(event.Message))
		r.forget(event.ProfileID + "/" + event.Stage)
	}
}

// Lifecycle opens a process vertex when the game starts and closes it when
// it stops.
func (r *Recorder) Lifecycle(event domain.LifecycleEvent) {
	key := event.ProfileID + "/process"
	if event.Running {
		v := r.vertex(key, fmt.Sprintf("game process (pid %d)", event.PID))
		_, _ = fmt.Fprintln(v.Stdout(), "started")
		return
	}
	v := r.vertex(key, "game process")
	v.Done(nil)
	r.forget(key)
}

// Output streams a process log line onto the process vertex.
func (r *Recorder) Output(event domain.OutputEvent) {
	v := r.vertex(event.ProfileID+"/process", "game process")
	w := v.Stdout()
	if event.Stream == domain.StreamStderr {
		w = v.Stderr()
	}
	_, _ = fmt.Fprintln(w, event.Line)
}

// Crash surfaces a crash report on the process vertex.
func (r *Recorder) Crash(report domain.CrashReport) {
	v := r.vertex(report.ProfileID+"/process", "game process")
	_, _ = fmt.Fprintf(v.Stderr(), "%s: %s %s\n", report.Title, report.Description, report.Solution)
}

// Close flushes and closes the tape.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *Recorder) vertex(key, name string) *progrock.VertexRecorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vertices[key]; ok {
		return v
	}
	v := r.rec.Vertex(digest.FromString(key), name)
	r.vertices[key] = v
	return v
}

func (r *Recorder) forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vertices, key)
}
