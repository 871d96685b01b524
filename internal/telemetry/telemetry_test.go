package telemetry

import (
	"context"
	"testing"
)

func TestStartPhaseEndsWithoutPanicking(t *testing.T) {
	shutdown := Setup()
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("shutdown: %v", err)
		}
	}()

	_, end := StartPhase(context.Background(), "discover")
	end()
}

func TestTracerIsUsableBeforeSetup(t *testing.T) {
	// Tracer() must not panic even if Setup was never called for this test
	// binary; the global provider's default is a working no-op.
	_, end := StartPhase(context.Background(), "plan")
	end()
}
