// Package progress implements the observer sinks for install/launch events.
package progress

import (
	"fmt"
	"sync"

	"go.trai.ch/ember/internal/core/domain"
	"go.trai.ch/ember/internal/core/ports"
)

var (
	_ ports.ProgressSink = (*Fanout)(nil)
	_ ports.ProgressSink = (*LogSink)(nil)
)

// Fanout forwards every event to all attached sinks. The zero value is
// usable and drops events until a sink is attached.
type Fanout struct {
	mu    sync.RWMutex
	sinks []ports.ProgressSink
}

// NewFanout creates a Fanout over the given sinks.
func NewFanout(sinks ...ports.ProgressSink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Attach adds a sink. Safe to call while events are flowing.
func (f *Fanout) Attach(sink ports.ProgressSink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks = append(f.sinks, sink)
}

// Progress forwards a progress event.
func (f *Fanout) Progress(event domain.ProgressEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.sinks {
		s.Progress(event)
	}
}

// Lifecycle forwards a lifecycle event.
func (f *Fanout) Lifecycle(event domain.LifecycleEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.sinks {
		s.Lifecycle(event)
	}
}

// Output forwards an output event.
func (f *Fanout) Output(event domain.OutputEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.sinks {
		s.Output(event)
	}
}

// Crash forwards a crash report.
func (f *Fanout) Crash(report domain.CrashReport) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.sinks {
		s.Crash(report)
	}
}

// LogSink writes events to the logger.
type LogSink struct {
	logger ports.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger ports.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Progress logs a progress event, failures at warn level.
func (l *LogSink) Progress(event domain.ProgressEvent) {
	msg := fmt.Sprintf("[%s] %s (%.0f%%)", event.Stage, event.Message, event.Percent)
	if event.Status == domain.ProgressFailed {
		l.logger.Warn(msg)
		return
	}
	l.logger.Info(msg)
}

// Lifecycle logs a lifecycle transition.
func (l *LogSink) Lifecycle(event domain.LifecycleEvent) {
	if event.Running {
		l.logger.Info(fmt.Sprintf("process started (pid %d)", event.PID))
		return
	}
	l.logger.Info("process stopped")
}

// Output logs a process output line at debug level.
func (l *LogSink) Output(event domain.OutputEvent) {
	l.logger.Debug(fmt.Sprintf("[%s] %s", event.Stream, event.Line))
}

// Crash logs a crash report.
func (l *LogSink) Crash(report domain.CrashReport) {
	l.logger.Warn(fmt.Sprintf("%s: %s %s", report.Title, report.Description, report.Solution))
}
