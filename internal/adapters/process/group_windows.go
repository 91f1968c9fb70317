//go:build windows

package process

import (
	"os/exec"
	"strconv"
	"syscall"
)

// killProcessGroup shells out to taskkill with the recursive tree flag
// and force flag, matching the Windows-style termination strategy: there
// is no POSIX process group to signal.
func killProcessGroup(pid int, _ syscall.Signal) error {
	cmd := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid)) //nolint:gosec // fixed args besides the pid
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 128 {
			// taskkill exits 128 when the pid no longer exists; treat as already gone.
			return nil
		}
		return err
	}
	return nil
}
