package ports

import "go.trai.ch/ember/internal/core/domain"

// ProgressSink receives the structured events the core emits: install/launch
// progress, process lifecycle transitions, process output lines and crash
// reports. Implementations must not block; events are at-most-once and
// ordered per category.
//
//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type ProgressSink interface {
	Progress(event domain.ProgressEvent)
	Lifecycle(event domain.LifecycleEvent)
	Output(event domain.OutputEvent)
	Crash(report domain.CrashReport)
}
