// Package mux provides an abstraction over the terminal multiplexer that
// owns the window being rearranged.
//
// The column operations query live state once (layout string, active pane,
// stored options) and then issue a bounded sequence of commands. Everything
// they need from the multiplexer goes through the Multiplexer interface so
// the layout algorithms can be tested against a fake.
package mux

import (
	"context"

	"github.com/timvw/pane-columns/internal/model"
)

// Multiplexer abstracts terminal multiplexer operations on one window.
// Implementations exist for tmux.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// Window returns the current layout string and active pane.
	Window(ctx context.Context) (model.Window, error)

	// WindowOption returns the value of a per-window user option, or "" when unset.
	WindowOption(ctx context.Context, name string) (string, error)

	// SetWindowOption stores a per-window user option.
	SetWindowOption(ctx context.Context, name, value string) error

	// ListPanes returns the window's panes in the multiplexer's own order.
	ListPanes(ctx context.Context) ([]model.Pane, error)

	// SelectPane focuses a pane.
	SelectPane(ctx context.Context, paneID string) error

	// SelectLayout applies a serialized layout to the window. This changes
	// cell geometry only; it does not move panes between cells.
	SelectLayout(ctx context.Context, layout string) error

	// SwapPane exchanges the cells of two panes. When detached is true the
	// active pane does not change.
	SwapPane(ctx context.Context, src, dst string, detached bool) error

	// Display shows a message to the user.
	Display(ctx context.Context, msg string) error
}
