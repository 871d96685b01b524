package main

import (
	"context"

	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/orchestrator"
)

// BuildCmd compiles the project without running the result.
type BuildCmd struct {
	Profile         string   `arg:"" optional:"" default:"debug" help:"build profile: debug or release"`
	Parallel        int      `short:"j" placeholder:"<n>" help:"override parallel_jobs from config.txt"`
	Verbose         bool     `short:"v" help:"log every compiler invocation"`
	AggregateErrors bool     `help:"collect every compile error instead of stopping at the first"`
	ExtraFlags      []string `arg:"" optional:"" passthrough:"" help:"flags after -- are passed through to the compiler verbatim"`
}

func (b *BuildCmd) Run(cctx *Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOverrides(cfg, b.Parallel, b.Verbose, b.AggregateErrors)

	orch := orchestrator.New(cctx.Sink)
	defer orch.Close()

	_, err = orch.Build(context.Background(), cfg, config.ParseProfile(b.Profile), b.ExtraFlags)
	return err
}

func applyOverrides(cfg *config.ProjectConfig, parallel int, verbose, aggregateErrors bool) {
	if parallel > 0 {
		cfg.ParallelJobs = parallel
	}
	if verbose {
		cfg.Verbose = true
	}
	if aggregateErrors {
		cfg.AggregateErrors = true
	}
}
