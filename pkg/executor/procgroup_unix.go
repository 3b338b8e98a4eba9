//go:build unix

package executor

import (
	"os/exec"
	"syscall"
)

func isolateProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// The child leads its group, so -pid reaches the tools it started too.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
