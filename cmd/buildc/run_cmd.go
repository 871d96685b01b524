package main

import (
	"context"
	"os"
	"os/exec"

	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/orchestrator"
)

// RunCmd builds the project, then executes the produced binary, exiting with
// its exit code.
type RunCmd struct {
	Profile         string   `arg:"" optional:"" default:"debug" help:"build profile: debug or release"`
	Parallel        int      `short:"j" placeholder:"<n>" help:"override parallel_jobs from config.txt"`
	Verbose         bool     `short:"v" help:"log every compiler invocation"`
	AggregateErrors bool     `help:"collect every compile error instead of stopping at the first"`
	ExtraFlags      []string `arg:"" optional:"" passthrough:"" help:"flags after -- are passed through to the compiler verbatim"`
}

func (r *RunCmd) Run(cctx *Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyOverrides(cfg, r.Parallel, r.Verbose, r.AggregateErrors)

	orch := orchestrator.New(cctx.Sink)
	defer orch.Close()

	result, err := orch.Build(context.Background(), cfg, config.ParseProfile(r.Profile), r.ExtraFlags)
	if err != nil {
		return err
	}

	cmd := exec.Command(result.BinaryPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()

	if exitErr, ok := runErr.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	}
	return runErr
}
