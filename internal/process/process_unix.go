//go:build !windows

// Package process provides subprocess group management so a timed-out
// rendering engine never leaks child processes.
package process

import (
	"os/exec"
	"syscall"
)

// SetGroup places the command in its own process group so the whole tree
// can be killed together.
func SetGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillGroup kills a process and all its children by sending SIGKILL to the
// process group (negative PID).
func KillGroup(pid int) {
	// Best-effort cleanup; the exec context cancellation is the fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
