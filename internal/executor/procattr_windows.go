//go:build windows

package executor

import "os/exec"

// configureProcessGroup keeps the default cancellation, which kills the direct
// child only.
func configureProcessGroup(c *exec.Cmd) {}
