package mux

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/timvw/pane-columns/internal/model"
)

// fieldSep separates fields in -F format strings. Pane ids, layout strings
// and option values never contain a tab.
const fieldSep = "\t"

// ExecFunc runs a tmux command line and returns its stdout.
type ExecFunc func(ctx context.Context, args ...string) (string, error)

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	opts Options

	// Logger receives every command at debug level. Nil disables logging.
	Logger *log.Logger

	// Exec runs tmux. Defaults to the tmux binary on $PATH; tests replace it.
	Exec ExecFunc
}

// NewTmux creates a new tmux multiplexer.
func NewTmux(opts Options) *Tmux {
	return &Tmux{opts: opts, Exec: execTmux}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// Window queries the window id, layout and active pane in one round trip.
func (t *Tmux) Window(ctx context.Context) (model.Window, error) {
	fields, err := t.query(ctx, 3, "#{window_id}", "#{window_layout}", "#{pane_id}")
	if err != nil {
		return model.Window{}, fmt.Errorf("tmux window query: %w", err)
	}
	return model.Window{
		ID:         fields[0],
		Layout:     fields[1],
		ActivePane: fields[2],
	}, nil
}

// WindowOption returns a user option such as "@column_0_last_pane".
func (t *Tmux) WindowOption(ctx context.Context, name string) (string, error) {
	if !strings.HasPrefix(name, "@") {
		return "", fmt.Errorf("option %q is not a user option", name)
	}
	fields, err := t.query(ctx, 1, "#{"+name+"}")
	if err != nil {
		return "", fmt.Errorf("tmux option %s: %w", name, err)
	}
	return fields[0], nil
}

// SetWindowOption runs set-window-option.
func (t *Tmux) SetWindowOption(ctx context.Context, name, value string) error {
	args := t.windowScoped("set-window-option")
	args = append(args, name, value)
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux set-window-option %s: %w", name, err)
	}
	return nil
}

// ListPanes returns the window's panes in tmux's pane order.
func (t *Tmux) ListPanes(ctx context.Context) ([]model.Pane, error) {
	format := strings.Join([]string{"#{pane_id}", "#{pane_index}", "#{pane_active}"}, fieldSep)
	args := t.windowScoped("list-panes")
	args = append(args, "-F", format)
	out, err := t.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}

	var panes []model.Pane
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, fieldSep)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unexpected list-panes output: %q", line)
		}
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid pane index in %q: %w", line, err)
		}
		panes = append(panes, model.Pane{
			ID:     parts[0],
			Index:  index,
			Active: parts[2] == "1",
		})
	}
	return panes, nil
}

// SelectPane focuses a pane.
func (t *Tmux) SelectPane(ctx context.Context, paneID string) error {
	if _, err := t.run(ctx, "select-pane", "-t", paneID); err != nil {
		return fmt.Errorf("tmux select-pane -t %s: %w", paneID, err)
	}
	return nil
}

// SelectLayout applies a layout string to the window.
func (t *Tmux) SelectLayout(ctx context.Context, layout string) error {
	args := t.windowScoped("select-layout")
	args = append(args, layout)
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux select-layout: %w", err)
	}
	return nil
}

// SwapPane runs swap-pane -s src -t dst, with -d when detached.
func (t *Tmux) SwapPane(ctx context.Context, src, dst string, detached bool) error {
	args := []string{"swap-pane"}
	if detached {
		args = append(args, "-d")
	}
	args = append(args, "-s", src, "-t", dst)
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux swap-pane %s %s: %w", src, dst, err)
	}
	return nil
}

// Display shows msg in the client's status line.
func (t *Tmux) Display(ctx context.Context, msg string) error {
	args := t.windowScoped("display-message")
	args = append(args, msg)
	if _, err := t.run(ctx, args...); err != nil {
		return fmt.Errorf("tmux display-message: %w", err)
	}
	return nil
}

// query runs display-message -p with the given format fields joined by
// fieldSep and returns exactly n fields.
func (t *Tmux) query(ctx context.Context, n int, fields ...string) ([]string, error) {
	args := t.windowScoped("display-message")
	args = append(args, "-p", strings.Join(fields, fieldSep))
	out, err := t.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(strings.TrimRight(out, "\n"), fieldSep)
	if len(parts) != n {
		return nil, fmt.Errorf("unexpected display-message output %q: got %d fields, want %d", out, len(parts), n)
	}
	return parts, nil
}

// windowScoped starts an argument list for a command that accepts a
// window target.
func (t *Tmux) windowScoped(command string) []string {
	args := []string{command}
	if t.opts.Target != "" {
		args = append(args, "-t", t.opts.Target)
	}
	return args
}

// run executes a tmux command and returns its stdout.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	if t.opts.Socket != "" {
		args = append([]string{"-S", t.opts.Socket}, args...)
	}
	if t.Logger != nil {
		t.Logger.Debug("tmux", "args", args)
	}
	fn := t.Exec
	if fn == nil {
		fn = execTmux
	}
	return fn(ctx, args...)
}

func execTmux(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
