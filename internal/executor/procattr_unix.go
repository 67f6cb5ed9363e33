//go:build !windows

package executor

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup starts the child in its own process group so that a
// timeout kills the whole tree (runner, compiler, uploader), not just the
// direct child.
func configureProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		// Negative pid signals the group.
		if err := syscall.Kill(-c.Process.Pid, syscall.SIGKILL); err != nil {
			return c.Process.Kill()
		}
		return nil
	}
}
