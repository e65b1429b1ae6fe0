package mux

import (
	"fmt"
	"os"
	"os/exec"
)

// Options select which server and window commands are sent to.
type Options struct {
	// Socket is the tmux server socket path (-S). Empty uses the default server.
	Socket string
	// Target is the window that window-scoped commands apply to (-t).
	// Empty means the current window.
	Target string
}

// Detect auto-detects the active terminal multiplexer.
// It checks environment variables first, then falls back to checking
// if the multiplexer binary exists and has a running server.
func Detect(opts Options) (Multiplexer, error) {
	if os.Getenv("TMUX") != "" || opts.Socket != "" {
		return NewTmux(opts), nil
	}
	if os.Getenv("ZELLIJ") != "" {
		return nil, fmt.Errorf("zellij has no layout strings; only tmux is supported")
	}

	if tmuxPath, err := exec.LookPath("tmux"); err == nil && tmuxPath != "" {
		cmd := exec.Command("tmux", "list-sessions")
		if err := cmd.Run(); err == nil {
			return NewTmux(opts), nil
		}
	}

	return nil, fmt.Errorf("no supported terminal multiplexer detected (set $TMUX or install tmux)")
}

// FromName creates a Multiplexer by name.
func FromName(name string, opts Options) (Multiplexer, error) {
	switch name {
	case "tmux":
		return NewTmux(opts), nil
	case "zellij":
		return nil, fmt.Errorf("zellij has no layout strings; only tmux is supported")
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: tmux)", name)
	}
}
