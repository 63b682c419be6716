package domain

import "time"

// ProgressStatus is the terminal-state tag of a progress event.
type ProgressStatus string

const (
	ProgressRunning  ProgressStatus = "progress"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// ProgressEvent reports install/launch progress to the host. Percent is
// always within [0,100]; Message is human-readable and present on the
// failure path too.
type ProgressEvent struct {
	ProfileID string
	Stage     string
	Message   string
	Percent   float64
	Status    ProgressStatus
}

// LifecycleEvent reports a supervised process starting or stopping.
type LifecycleEvent struct {
	ProfileID string
	Running   bool
	// PID is set while Running is true.
	PID int
}

// OutputStream tags which stream an output line came from.
type OutputStream string

const (
	StreamStdout OutputStream = "stdout"
	StreamStderr OutputStream = "stderr"
)

// OutputEvent is one line of process output, timestamp-stripped.
type OutputEvent struct {
	ProfileID string
	Line      string
	Stream    OutputStream
	Timestamp time.Time
}

// CrashReport is emitted when a recognized failure signature is found in the
// game log after an abnormal exit. It augments, never replaces, the raw
// failure message.
type CrashReport struct {
	ProfileID   string
	Title       string
	Description string
	Solution    string
}
