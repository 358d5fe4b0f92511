//go:build windows

package process

import (
	"os"
	"os/exec"
)

// SetGroup is a no-op on Windows; exec's context cancellation terminates
// the process directly.
func SetGroup(cmd *exec.Cmd) {}

// KillGroup kills the process by PID. Windows has no process groups in the
// POSIX sense; child processes are terminated by the OS job object when the
// parent exits.
func KillGroup(pid int) {
	if proc, err := os.FindProcess(pid); err == nil {
		_ = proc.Kill()
	}
}
