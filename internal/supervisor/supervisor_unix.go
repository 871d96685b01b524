//go:build unix

package supervisor

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places cmd's future child in a new process group whose
// pgid equals its pid, performed in the post-fork/pre-exec window. Mirrors
// banksean-sand's container.go ContainerLogs, which sets the same
// SysProcAttr before streaming a long-lived container process.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillGroup sends SIGKILL to every process in pgid's group, best-effort.
// pgid is the spawned child's PID when it was started with
// SpawnOptions.NewProcessGroup set, since pgid == pid in that case.
func KillGroup(pgid int) {
	_ = syscall.Kill(-pgid, syscall.SIGKILL)
}
