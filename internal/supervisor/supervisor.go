// Package supervisor spawns, observes, and kills compiler/linker child
// processes, and maintains the live-PID registry used to tear them down on
// cancellation.
package supervisor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/banksean/buildc/internal/builderr"
)

// SpawnOptions controls how a child process is launched.
type SpawnOptions struct {
	// NewProcessGroup places the child in its own process group (pgid ==
	// pid) on hosts that support it, so KillGroup can terminate the whole
	// subtree a compiler wrapper script might spawn. No-op elsewhere.
	NewProcessGroup bool
}

// Child is a live, supervised process: its OS PID plus the plumbing needed
// to collect its output once it exits.
type Child struct {
	cmd    *exec.Cmd
	PID    int
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// Spawn starts compiler with argv, capturing stdout/stderr to buffers and, if
// requested and supported, placing it in its own process group.
func Spawn(compiler string, argv []string, opts SpawnOptions) (*Child, error) {
	cmd := exec.Command(compiler, argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.NewProcessGroup {
		setProcessGroup(cmd)
	}

	if err := cmd.Start(); err != nil {
		return nil, builderr.NewIo(fmt.Sprintf("failed to spawn %s", compiler), err)
	}

	return &Child{
		cmd:    cmd,
		PID:    cmd.Process.Pid,
		stdout: &stdout,
		stderr: &stderr,
	}, nil
}

// ExitStatus is the observed outcome of a Wait.
type ExitStatus struct {
	Success  bool
	ExitCode *int
}

// Wait blocks until child exits, returning its exit status and captured
// output streams.
func Wait(child *Child) (ExitStatus, string, string, error) {
	err := child.cmd.Wait()
	stdout := child.stdout.String()
	stderr := child.stderr.String()

	if err == nil {
		return ExitStatus{Success: true}, stdout, stderr, nil
	}

	if exitErr, ok := err.(*exec.ExitError); ok {
		code := exitErr.ExitCode()
		return ExitStatus{Success: false, ExitCode: &code}, stdout, stderr, nil
	}

	return ExitStatus{}, stdout, stderr, builderr.NewIo("failed to wait for child process", err)
}

// Kill sends an unconditional termination signal to pid, best-effort.
func Kill(pid int) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return
	}
	_ = proc.Kill()
}
