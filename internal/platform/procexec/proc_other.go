//go:build !unix

package procexec

import "os/exec"

// configureProcess keeps exec's default Cancel, which kills the direct child.
func configureProcess(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}
