package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/timvw/pane-columns/internal/layout"
)

var flagRaw bool

var (
	activeStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAB283"))
	containerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C9CF5"))
	enumStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

var showLayoutCmd = &cobra.Command{
	Use:   "show-layout",
	Short: "Print the window layout as a tree",
	Long: `Print the current window layout as a tree of columns, rows and panes
with their geometry. The active pane is marked with '*'.

With --raw, print the layout string exactly as select-layout accepts it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := getMultiplexer(loggerFromContext(ctx))
		if err != nil {
			return err
		}
		win, err := m.Window(ctx)
		if err != nil {
			return err
		}
		root, err := layout.Parse(win.Layout)
		if err != nil {
			return fmt.Errorf("parse window layout %q: %w", win.Layout, err)
		}

		if flagRaw {
			fmt.Fprintln(cmd.OutOrStdout(), root.String())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderLayout(root, win.ActivePane))
		return nil
	},
}

// renderLayout draws b as a tree, marking the active pane.
func renderLayout(b *layout.Box, active string) string {
	return layoutTree(b, active).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle).
		String()
}

func layoutTree(b *layout.Box, active string) *tree.Tree {
	t := tree.Root(boxLabel(b, active))
	for _, c := range b.Children {
		if c.IsContainer() {
			t.Child(layoutTree(c, active))
		} else {
			t.Child(boxLabel(c, active))
		}
	}
	return t
}

func boxLabel(b *layout.Box, active string) string {
	geom := fmt.Sprintf("%dx%d at %d,%d", b.Width, b.Height, b.X, b.Y)
	switch {
	case b.IsContainer():
		return containerStyle.Render(fmt.Sprintf("%s %s", b.Kind, geom))
	case b.PaneID == active:
		return activeStyle.Render(fmt.Sprintf("%s %s *", b.PaneID, geom))
	default:
		return fmt.Sprintf("%s %s", b.PaneID, geom)
	}
}

func init() {
	showLayoutCmd.Flags().BoolVar(&flagRaw, "raw", false, "print the serialized layout string")
	rootCmd.AddCommand(showLayoutCmd)
}
