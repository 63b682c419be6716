package progrock_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/ember/internal/adapters/progress/progrock"
	"go.trai.ch/ember/internal/core/domain"
)

func TestRecorder_StageRoundTrip(t *testing.T) {
	rec := progrock.New()

	rec.Progress(domain.ProgressEvent{ProfileID: "1.21.1", Stage: "libraries", Message: "fetching", Percent: 20, Status: domain.ProgressRunning})
	rec.Progress(domain.ProgressEvent{ProfileID: "1.21.1", Stage: "libraries", Message: "done", Percent: 50, Status: domain.ProgressComplete})

	require.NoError(t, rec.Close())
}

func TestRecorder_ProcessLifecycle(t *testing.T) {
	rec := progrock.New()

	rec.Lifecycle(domain.LifecycleEvent{ProfileID: "1.21.1", Running: true, PID: 99})
	rec.Output(domain.OutputEvent{ProfileID: "1.21.1", Line: "[Render thread/INFO]: Hello", Stream: domain.StreamStdout})
	rec.Output(domain.OutputEvent{ProfileID: "1.21.1", Line: "warning", Stream: domain.StreamStderr})
	rec.Crash(domain.CrashReport{ProfileID: "1.21.1", Title: "Out of memory"})
	rec.Lifecycle(domain.LifecycleEvent{ProfileID: "1.21.1", Running: false})

	require.NoError(t, rec.Close())
}
