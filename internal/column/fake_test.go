package column

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/timvw/pane-columns/internal/layout"
	"github.com/timvw/pane-columns/internal/model"
)

// fakeMux simulates one tmux window. cells holds the window geometry; on
// query its leaves are labelled with the live pane order, the way tmux lays
// panes into select-layout cells by position.
type fakeMux struct {
	cells   string
	live    []string
	active  string
	options map[string]string

	queries   int
	commands  []string
	displayed []string
}

func newFakeMux(cells string, active string) *fakeMux {
	root, err := layout.Parse(cells)
	if err != nil {
		panic(err)
	}
	return &fakeMux{
		cells:   cells,
		live:    root.PaneIDs(),
		active:  active,
		options: map[string]string{},
	}
}

func (f *fakeMux) Name() string { return "fake" }

func (f *fakeMux) Window(context.Context) (model.Window, error) {
	f.queries++
	w := model.Window{ID: "@1", Layout: f.cells, ActivePane: f.active}
	root, err := layout.Parse(f.cells)
	if err != nil {
		return w, nil
	}
	panes := root.Panes()
	if len(panes) == len(f.live) {
		for i, p := range panes {
			p.PaneID = f.live[i]
		}
		w.Layout = root.String()
	}
	return w, nil
}

func (f *fakeMux) WindowOption(_ context.Context, name string) (string, error) {
	f.queries++
	return f.options[name], nil
}

func (f *fakeMux) SetWindowOption(_ context.Context, name, value string) error {
	f.commands = append(f.commands, "set-window-option "+name+" "+value)
	f.options[name] = value
	return nil
}

func (f *fakeMux) ListPanes(context.Context) ([]model.Pane, error) {
	f.queries++
	panes := make([]model.Pane, len(f.live))
	for i, id := range f.live {
		panes[i] = model.Pane{ID: id, Index: i, Active: id == f.active}
	}
	return panes, nil
}

func (f *fakeMux) SelectPane(_ context.Context, paneID string) error {
	f.commands = append(f.commands, "select-pane "+paneID)
	if !slices.Contains(f.live, paneID) {
		return fmt.Errorf("can't find pane: %s", paneID)
	}
	f.active = paneID
	return nil
}

func (f *fakeMux) SelectLayout(_ context.Context, s string) error {
	f.commands = append(f.commands, "select-layout "+s)
	if _, err := layout.Parse(s); err != nil {
		return err
	}
	f.cells = s
	return nil
}

func (f *fakeMux) SwapPane(_ context.Context, src, dst string, detached bool) error {
	cmd := "swap-pane -s " + src + " -t " + dst
	if detached {
		cmd = "swap-pane -d -s " + src + " -t " + dst
	}
	f.commands = append(f.commands, cmd)

	i, j := slices.Index(f.live, src), slices.Index(f.live, dst)
	if i < 0 || j < 0 {
		return fmt.Errorf("can't find pane: %s or %s", src, dst)
	}
	f.live[i], f.live[j] = f.live[j], f.live[i]
	// -d keeps the active position, so focus moves to the other pane.
	if detached {
		switch f.active {
		case src:
			f.active = dst
		case dst:
			f.active = src
		}
	}
	return nil
}

func (f *fakeMux) Display(_ context.Context, msg string) error {
	f.displayed = append(f.displayed, msg)
	return nil
}

// swaps returns the issued swap-pane commands.
func (f *fakeMux) swaps() []string {
	var out []string
	for _, c := range f.commands {
		if strings.HasPrefix(c, "swap-pane") {
			out = append(out, c)
		}
	}
	return out
}

// geometry returns the current window layout without checksum.
func (f *fakeMux) geometry() string {
	w, _ := f.Window(context.Background())
	f.queries--
	root, err := layout.Parse(w.Layout)
	if err != nil {
		return w.Layout
	}
	return layout.Serialize(root, false)
}
