//go:build windows

package md2post

import (
	"context"
	"os/exec"
	"strconv"
)

// execCommand builds a context-bound command. On cancellation taskkill
// terminates the process tree (/F force, /T children).
func execCommand(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(cmd.Process.Pid)).Run()
		}
		return nil
	}
	return cmd
}
