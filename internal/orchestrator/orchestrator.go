// Package orchestrator sequences one top-level build: discovery, path
// mirroring, directory creation, compilation, and linking, reporting
// progress and honoring cancellation along the way.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/banksean/buildc/internal/builderr"
	"github.com/banksean/buildc/internal/cancel"
	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/linker"
	"github.com/banksean/buildc/internal/progress"
	"github.com/banksean/buildc/internal/source"
	"github.com/banksean/buildc/internal/supervisor"
	"github.com/banksean/buildc/internal/telemetry"
	"github.com/banksean/buildc/internal/workerpool"
)

// Orchestrator owns the process-wide state a sequence of builds shares: the
// cancellation token, the one interrupt handler registered per process, and
// the progress sink builds report to.
type Orchestrator struct {
	Sink  progress.Sink
	Token *cancel.Token

	stopWatch func()
}

// New returns an Orchestrator with its interrupt handler registered. Call
// Close to unregister it when the process is shutting down.
func New(sink progress.Sink) *Orchestrator {
	token := cancel.New()
	o := &Orchestrator{Sink: sink, Token: token}
	o.stopWatch = cancel.Watch(token, func() {
		sink.Warn("interrupted, stopping...")
	})
	return o
}

// Close unregisters the interrupt handler.
func (o *Orchestrator) Close() {
	if o.stopWatch != nil {
		o.stopWatch()
	}
}

// Result is what Build returns on success.
type Result struct {
	BinaryPath string
	Compiled   int
	UpToDate   int
	Duration   time.Duration
}

// Build runs one full discover → plan → compile → link pass. The
// cancellation token is reset at the start, so each Build call is
// independent of whether a prior one was interrupted.
func (o *Orchestrator) Build(ctx context.Context, cfg *config.ProjectConfig, profile config.BuildProfile, extraFlags []string) (*Result, error) {
	o.Token.Reset()
	start := time.Now()

	ctx, endDiscover := telemetry.StartPhase(ctx, "discover")
	sources, err := source.Discover(cfg.SourceDir)
	endDiscover()
	if err != nil {
		return nil, err
	}
	o.Sink.Info(fmt.Sprintf("Found %d source files", len(sources)))

	tasks := make([]source.ObjectTask, len(sources))
	for i, s := range sources {
		tasks[i] = source.TaskFor(s, cfg.TempDir)
	}

	_, endPlan := telemetry.StartPhase(ctx, "plan")
	err = source.EnsureDirs(cfg.OutputDir, cfg.TempDir, tasks)
	endPlan()
	if err != nil {
		return nil, err
	}

	children := supervisor.NewActiveChildren(cfg.UseProcessGroups && runtime.GOOS != "windows")
	pool := workerpool.New(cfg, profile, extraFlags, o.Sink, o.Token, children)

	_, endSchedule := telemetry.StartPhase(ctx, "schedule")
	allTasks, compiled, err := pool.Run(tasks)
	endSchedule()
	if err != nil {
		return nil, err
	}

	if compiled > 0 {
		o.Sink.Info(fmt.Sprintf("Compiled %d files", compiled))
	} else {
		o.Sink.Info("All up-to-date")
	}

	binaryPath := filepath.Join(cfg.OutputDir, cfg.AppName)
	o.Sink.Info(fmt.Sprintf("Linking %s", binaryPath))

	_, endLink := telemetry.StartPhase(ctx, "link")
	if o.Token.IsSet() {
		endLink()
		return nil, builderr.NewCancelled()
	}
	err = linker.Link(allTasks, binaryPath, cfg, profile, extraFlags)
	endLink()
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	o.Sink.Info(fmt.Sprintf("Finished %s in %.2fs", profile, elapsed.Seconds()))

	return &Result{
		BinaryPath: binaryPath,
		Compiled:   compiled,
		UpToDate:   len(allTasks) - compiled,
		Duration:   elapsed,
	}, nil
}
