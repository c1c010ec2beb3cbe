// Package testutil boots throwaway tmux servers for integration tests.
package testutil

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// SessionName is the session StartTmuxServer creates.
const SessionName = "tmux-popup-compose-test"

var ErrPaneUnavailable = errors.New("tmux pane unavailable")

// RequireTmux aborts the calling test when tmux is not present on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// StartTmuxServer boots a temporary tmux server bound to a unique socket with
// one detached session running command. The server is killed and its files
// removed when the test finishes.
func StartTmuxServer(t *testing.T, command ...string) string {
	t.Helper()
	RequireTmux(t)
	baseDir, err := os.MkdirTemp("/tmp", "tmux-popup-compose-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(baseDir) })
	socketPath := filepath.Join(baseDir, "tmux-test.sock")
	if len(command) == 0 {
		command = []string{"sleep", "600"}
	}
	args := append([]string{"-f", "/dev/null", "new-session", "-d", "-x", "80", "-y", "24", "-s", SessionName}, command...)
	if err := tmuxCommand(socketPath, args...).Run(); err != nil {
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(func() {
		_ = tmuxCommand(socketPath, "kill-server").Run()
	})
	return socketPath
}

// CapturePane returns the rendered contents of a tmux pane.
func CapturePane(t *testing.T, socketPath, target string) (string, error) {
	t.Helper()
	RequireTmux(t)
	args := []string{"capture-pane", "-p"}
	if target != "" {
		args = append(args, "-t", target)
	}
	output, err := tmuxCommand(socketPath, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrPaneUnavailable
		}
		return "", fmt.Errorf("capture-pane failed: %w", err)
	}
	return string(output), nil
}

// WaitForPane polls the pane until its contents contain want.
func WaitForPane(t *testing.T, socketPath, target, want string, timeout time.Duration) string {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var last string
	for time.Now().Before(deadline) {
		out, err := CapturePane(t, socketPath, target)
		if err == nil {
			last = out
			if strings.Contains(out, want) {
				return out
			}
		} else if !errors.Is(err, ErrPaneUnavailable) {
			t.Fatalf("capture-pane error: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in pane %s; last capture:\n%s", want, target, last)
	return last
}

func tmuxCommand(socket string, extra ...string) *exec.Cmd {
	trimmed := strings.TrimSpace(socket)
	args := make([]string, 0, len(extra)+2)
	if trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	cmd := exec.Command("tmux", args...)
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") {
			continue
		}
		env = append(env, entry)
	}
	env = append(env, "TMUX=")
	if trimmed != "" {
		env = append(env, "TMUX_TMPDIR="+filepath.Dir(trimmed))
	}
	cmd.Env = env
	return cmd
}
