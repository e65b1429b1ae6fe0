package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-columns/internal/column"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Show a message in tmux to check the binding works",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer(loggerFromContext(cmd.Context()))
		if err != nil {
			return err
		}
		return m.Display(cmd.Context(), "test")
	},
}

var selectColumnCmd = &cobra.Command{
	Use:   "select-column <column>",
	Short: "Focus a column by 1-based index",
	Long: `Focus the column with the given 1-based index.

The pane that was last active in that column is focused again if it is still
there; otherwise the column's first pane is. An index past the last column
shows a message in tmux and changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseColumn(args[0])
		if err != nil {
			return err
		}
		op, err := getOperator(cmd.Context())
		if err != nil {
			return err
		}
		applied, err := op.SelectColumn(cmd.Context(), n)
		if err != nil {
			return err
		}
		report(cmd.Context(), "select-column", applied)
		return nil
	},
}

var evenColumnCmd = &cobra.Command{
	Use:   "even-column",
	Short: "Give every column the same width",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := getOperator(cmd.Context())
		if err != nil {
			return err
		}
		applied, err := op.EvenColumns(cmd.Context())
		if err != nil {
			return err
		}
		report(cmd.Context(), "even-column", applied)
		return nil
	},
}

var swapColumnCmd = &cobra.Command{
	Use:   "swap-column <a> <b>",
	Short: "Exchange two columns given by 1-based index",
	Long: `Exchange two columns. Each column keeps its width and its panes keep
their arrangement. Equal or out-of-range indices change nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := parseColumn(args[0])
		if err != nil {
			return err
		}
		b, err := parseColumn(args[1])
		if err != nil {
			return err
		}
		op, err := getOperator(cmd.Context())
		if err != nil {
			return err
		}
		applied, err := op.SwapColumns(cmd.Context(), a, b)
		if err != nil {
			return err
		}
		report(cmd.Context(), "swap-column", applied)
		return nil
	},
}

var moveColumnCmd = &cobra.Command{
	Use:   "move-column <column|cur> <left|right>",
	Short: "Move a column one position left or right",
	Long: `Swap a column with its neighbour. "cur" names the column holding the
active pane. Moving past either end wraps around.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := column.ParseRef(args[0])
		if err != nil {
			return err
		}
		dir, err := column.ParseDirection(args[1])
		if err != nil {
			return err
		}
		op, err := getOperator(cmd.Context())
		if err != nil {
			return err
		}
		applied, err := op.MoveColumn(cmd.Context(), ref, dir)
		if err != nil {
			return err
		}
		report(cmd.Context(), "move-column", applied)
		return nil
	},
}

func parseColumn(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: want a 1-based number", s)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(selectColumnCmd)
	rootCmd.AddCommand(evenColumnCmd)
	rootCmd.AddCommand(swapColumnCmd)
	rootCmd.AddCommand(moveColumnCmd)
}
