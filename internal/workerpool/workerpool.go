// Package workerpool dispatches compile tasks across a bounded set of
// workers, enforces the fail-fast/aggregate error policy, and returns the
// union of freshly compiled and already up-to-date objects for linking.
package workerpool

import (
	"fmt"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/banksean/buildc/internal/builderr"
	"github.com/banksean/buildc/internal/cancel"
	"github.com/banksean/buildc/internal/compileargs"
	"github.com/banksean/buildc/internal/config"
	"github.com/banksean/buildc/internal/oracle"
	"github.com/banksean/buildc/internal/progress"
	"github.com/banksean/buildc/internal/source"
	"github.com/banksean/buildc/internal/supervisor"
)

// Pool dispatches ObjectTasks for one build invocation.
type Pool struct {
	Config     *config.ProjectConfig
	Profile    config.BuildProfile
	ExtraFlags []string
	Sink       progress.Sink
	Token      *cancel.Token
	Children   *supervisor.ActiveChildren
}

// New constructs a Pool from the pieces Orchestrator already holds.
func New(cfg *config.ProjectConfig, profile config.BuildProfile, extraFlags []string, sink progress.Sink, token *cancel.Token, children *supervisor.ActiveChildren) *Pool {
	return &Pool{
		Config:     cfg,
		Profile:    profile,
		ExtraFlags: extraFlags,
		Sink:       sink,
		Token:      token,
		Children:   children,
	}
}

type compileResult struct {
	task source.ObjectTask
	err  error
}

// Run executes the planning pass, dispatches every stale task, and collects
// results under the configured fail-fast or aggregate policy. On success it
// returns every task that should feed the linker (freshly compiled plus
// already up-to-date) and how many were actually compiled this pass.
func (p *Pool) Run(tasks []source.ObjectTask) ([]source.ObjectTask, int, error) {
	var toCompile, upToDate []source.ObjectTask
	for _, t := range tasks {
		if oracle.ShouldRecompile(t, p.Config) {
			toCompile = append(toCompile, t)
		} else {
			upToDate = append(upToDate, t)
		}
	}

	if len(toCompile) == 0 {
		return upToDate, 0, nil
	}

	numWorkers := p.Config.ParallelJobs
	if numWorkers > len(toCompile) {
		numWorkers = len(toCompile)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	total := len(toCompile)
	taskCh := make(chan source.ObjectTask, total)
	for _, t := range toCompile {
		taskCh <- t
	}
	close(taskCh)

	resultCh := make(chan compileResult, total)
	var counter atomic.Int64

	g := new(errgroup.Group)
	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			p.worker(taskCh, resultCh, total, &counter)
			return nil
		})
	}

	var errs []error
	var compiled []source.ObjectTask
	received := 0

	for received < total {
		res, ok := <-resultCh
		if !ok {
			break
		}
		received++

		if res.err != nil {
			errs = append(errs, res.err)
			if !p.Config.AggregateErrors {
				p.Token.Set()
				p.Children.KillAll()
				break
			}
			continue
		}
		compiled = append(compiled, res.task)
	}

	_ = g.Wait()

	if p.Token.IsSet() && len(errs) == 0 {
		return nil, 0, builderr.NewCancelled()
	}
	if len(errs) > 0 {
		return nil, 0, builderr.NewMultiple(errs)
	}

	// Return the link set in the input (discovery) order, not the order in
	// which compiles happened to finish.
	keep := make(map[string]bool, len(compiled)+len(upToDate))
	for _, t := range compiled {
		keep[t.ObjectPath] = true
	}
	for _, t := range upToDate {
		keep[t.ObjectPath] = true
	}
	all := make([]source.ObjectTask, 0, len(keep))
	for _, t := range tasks {
		if keep[t.ObjectPath] {
			all = append(all, t)
		}
	}
	return all, len(compiled), nil
}

// worker services taskCh until it is drained or cancellation is observed,
// polling the token both before dequeuing and again after dequeuing but
// before spawning the compiler, matching spec.md §4.8's two poll points.
func (p *Pool) worker(taskCh <-chan source.ObjectTask, resultCh chan<- compileResult, total int, counter *atomic.Int64) {
	for {
		if p.Token.IsSet() {
			return
		}

		task, ok := <-taskCh
		if !ok {
			return
		}

		if p.Token.IsSet() {
			return
		}

		n := counter.Add(1)
		p.Sink.Compiling(int(n), total, task.Source.RelativePath)

		err := p.compile(task)
		resultCh <- compileResult{task: task, err: err}
	}
}

func (p *Pool) compile(task source.ObjectTask) error {
	compiler, argv := compileargs.Build(task, p.Config, p.Profile, p.ExtraFlags)

	if p.Config.Verbose {
		p.Sink.Info(fmt.Sprintf("  $ %s %s", compiler, strings.Join(argv, " ")))
	}

	child, err := supervisor.Spawn(compiler, argv, supervisor.SpawnOptions{
		NewProcessGroup: p.Config.UseProcessGroups,
	})
	if err != nil {
		return err
	}

	p.Children.Add(child.PID)
	status, _, stderr, err := supervisor.Wait(child)
	p.Children.Remove(child.PID)
	if err != nil {
		return err
	}

	if p.Token.IsSet() {
		return builderr.NewCancelled()
	}

	if !status.Success {
		return builderr.NewCompile(task.Source.RelativePath, stderr, status.ExitCode)
	}
	return nil
}
