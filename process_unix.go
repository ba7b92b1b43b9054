//go:build !windows

package md2post

import (
	"context"
	"os/exec"
	"syscall"
)

// execCommand builds a context-bound command in its own process group.
// On cancellation the whole group is killed, so a hung typesetter
// cannot leave orphaned children behind.
func execCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			// Best-effort cleanup; negative PID targets the group.
			_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		}
		return nil
	}
	return cmd
}
