//go:build !unix

package executor

import "os/exec"

// Process groups are a unix concept; elsewhere the command keeps the default setup.
func isolateProcessGroup(cmd *exec.Cmd) {}
