package telemetry_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/ember/internal/adapters/telemetry"
)

// recordingProcessor captures span names as they end.
type recordingProcessor struct {
	mu    sync.Mutex
	ended []string
}

func (p *recordingProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

func (p *recordingProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ended = append(p.ended, s.Name())
}

func (p *recordingProcessor) ForceFlush(_ context.Context) error { return nil }
func (p *recordingProcessor) Shutdown(_ context.Context) error   { return nil }

func TestOTelTracer_SpanReachesProcessor(t *testing.T) {
	proc := &recordingProcessor{}
	provider := telemetry.InstallProvider(proc)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	})

	tracer := telemetry.NewOTelTracer("ember-test")
	_, span := tracer.Start(context.Background(), "install.vanilla")
	span.SetAttribute("version", "1.21.1")
	span.SetAttribute("libraries", 42)
	span.SetAttribute("modded", true)
	span.RecordError(errors.New("boom"))
	_, err := span.Write([]byte("log line"))
	require.NoError(t, err)
	span.End()

	proc.mu.Lock()
	defer proc.mu.Unlock()
	assert.Contains(t, proc.ended, "install.vanilla")
}

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx, span := tracer.Start(context.Background(), "test-span")
	assert.NotNil(t, ctx)
	assert.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("test error"))
	n, err := span.Write([]byte("test log data"))
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	span.End()
}
