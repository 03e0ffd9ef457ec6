//go:build unix

package harness

import (
	"os/exec"
	"syscall"
)

// killGroupOnCancel starts the planner in its own process group and makes
// context cancellation kill the whole group, so wrapper scripts do not leave
// orphaned children holding stdout open.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
