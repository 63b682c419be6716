package domain

// ProcessState is the supervisor's lifecycle state machine:
// NotStarted → Running → Exited | SpawnFailed.
type ProcessState int

const (
	ProcessNotStarted ProcessState = iota
	ProcessRunning
	ProcessExited
	ProcessSpawnFailed
)

func (s ProcessState) String() string {
	switch s {
	case ProcessNotStarted:
		return "not-started"
	case ProcessRunning:
		return "running"
	case ProcessExited:
		return "exited"
	case ProcessSpawnFailed:
		return "spawn-failed"
	default:
		return "unknown"
	}
}
