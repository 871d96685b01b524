// Package telemetry wraps Orchestrator phases in OpenTelemetry spans. It is
// additive instrumentation only: Setup installs an SDK TracerProvider with no
// exporter, so spans are recorded but never exported. There is no option to
// configure an endpoint or exporter.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/banksean/buildc"

// Setup installs a TracerProvider and returns a shutdown func to flush and
// release it. Called once per process, near the start of main.
func Setup() (shutdown func(context.Context) error) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

// Tracer returns the package-wide tracer, resolved lazily so packages that
// never call Setup (tests, the library path) still get a working no-op
// tracer from the global provider's default.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartPhase starts a span named for one Orchestrator phase (discover, plan,
// schedule, link) and returns the derived context and the span's End func.
func StartPhase(ctx context.Context, phase string) (context.Context, func()) {
	ctx, span := Tracer().Start(ctx, phase)
	return ctx, func() { span.End() }
}
