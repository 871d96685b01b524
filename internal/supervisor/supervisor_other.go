//go:build !unix

package supervisor

import "os/exec"

// setProcessGroup is a no-op on hosts without process groups.
func setProcessGroup(cmd *exec.Cmd) {}

// KillGroup is a no-op on hosts without process groups.
func KillGroup(pgid int) {}
