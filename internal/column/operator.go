// Package column rearranges the columns of a tmux window.
//
// A window whose root layout cell splits left to right is treated as a row
// of columns. Operator can focus a column, even out column widths, swap two
// columns or move one column left or right. Each operation reads the live
// layout once, computes the target layout in memory, and then reconciles the
// window with one select-layout and at most n-1 swap-pane commands.
package column

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/pane-columns/internal/layout"
	"github.com/timvw/pane-columns/internal/model"
	"github.com/timvw/pane-columns/internal/mux"
	pcotel "github.com/timvw/pane-columns/internal/otel"
)

var tracer = otel.Tracer("pane-columns")

// ErrActivePaneNotFound means the focused pane is not part of the layout.
var ErrActivePaneNotFound = errors.New("active pane not found in layout")

var discard = log.New(io.Discard)

// Direction is where MoveColumn moves a column.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// ParseDirection accepts "left" or "right".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (want left or right)", s)
	}
}

// Ref names a column either by 1-based index or as the column holding the
// active pane.
type Ref struct {
	Current bool
	Index   int // 1-based; ignored when Current is set
}

// ParseRef accepts "cur" or a 1-based column number.
func ParseRef(s string) (Ref, error) {
	if s == "cur" {
		return Ref{Current: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid column %q (want a number or \"cur\")", s)
	}
	return Ref{Index: n}, nil
}

func (r Ref) String() string {
	if r.Current {
		return "cur"
	}
	return strconv.Itoa(r.Index)
}

// Operator runs column operations against one multiplexer window.
type Operator struct {
	Mux     mux.Multiplexer
	Logger  *log.Logger     // nil discards
	Metrics *pcotel.Metrics // nil-safe
}

// New creates an Operator.
func New(m mux.Multiplexer, logger *log.Logger, metrics *pcotel.Metrics) *Operator {
	return &Operator{Mux: m, Logger: logger, Metrics: metrics}
}

func (o *Operator) log() *log.Logger {
	if o.Logger == nil {
		return discard
	}
	return o.Logger
}

// SelectColumn focuses the column with the given 1-based index. The pane
// that was last active in that column is restored if it still lives there;
// otherwise the column's first pane is focused. The currently active pane is
// remembered for its own column. Returns false when nothing changed.
func (o *Operator) SelectColumn(ctx context.Context, column int) (applied bool, err error) {
	ctx, span := tracer.Start(ctx, "column.select", trace.WithAttributes(attribute.Int("column", column)))
	defer func() { o.finish(ctx, span, "select", applied, err) }()

	win, root, err := o.snapshot(ctx)
	if err != nil {
		return false, err
	}
	if root.Kind != layout.HBox {
		return false, o.Mux.Display(ctx, "Not in column-based layout")
	}
	idx := column - 1
	if idx < 0 || idx >= len(root.Children) {
		return false, o.Mux.Display(ctx, fmt.Sprintf("Column %d does not exist", column))
	}

	current := columnOf(root, win.ActivePane)
	if current < 0 {
		return false, fmt.Errorf("%w: %s", ErrActivePaneNotFound, win.ActivePane)
	}
	if idx == current {
		return false, nil
	}

	dest := root.Children[idx]
	raise := dest.FirstPane().PaneID
	last, err := o.Mux.WindowOption(ctx, model.LastPaneOption(idx))
	if err != nil {
		return false, err
	}
	if last != "" && dest.FindPane(last) != nil {
		raise = last
	}

	o.log().Debug("selecting column", "from", current+1, "to", column, "pane", raise)
	if err := o.Mux.SetWindowOption(ctx, model.LastPaneOption(current), win.ActivePane); err != nil {
		return false, err
	}
	if err := o.Mux.SelectPane(ctx, raise); err != nil {
		return false, err
	}
	return true, nil
}

// EvenColumns gives every column the same width, give or take one cell.
func (o *Operator) EvenColumns(ctx context.Context) (applied bool, err error) {
	ctx, span := tracer.Start(ctx, "column.even")
	defer func() { o.finish(ctx, span, "even", applied, err) }()

	win, root, err := o.snapshot(ctx)
	if err != nil {
		return false, err
	}
	if root.Kind != layout.HBox {
		o.log().Info("not a column layout, nothing to even")
		return false, nil
	}

	weights := make([]int, len(root.Children))
	for i := range weights {
		weights[i] = 1
	}
	if err := root.Adjust(weights); err != nil {
		return false, err
	}
	if err := o.ApplyLayout(ctx, root, win.ActivePane); err != nil {
		return false, err
	}
	return true, nil
}

// SwapColumns exchanges two columns given by 1-based index. Each column
// keeps its width. Equal or out-of-range indices do nothing.
func (o *Operator) SwapColumns(ctx context.Context, a, b int) (applied bool, err error) {
	ctx, span := tracer.Start(ctx, "column.swap", trace.WithAttributes(
		attribute.Int("column.a", a),
		attribute.Int("column.b", b),
	))
	defer func() { o.finish(ctx, span, "swap", applied, err) }()

	if a == b {
		return false, nil
	}

	win, root, err := o.snapshot(ctx)
	if err != nil {
		return false, err
	}
	if root.Kind != layout.HBox {
		o.log().Info("not a column layout, nothing to swap")
		return false, nil
	}
	i, j := a-1, b-1
	if !inRange(root, i) || !inRange(root, j) {
		o.log().Info("column out of range", "a", a, "b", b, "columns", len(root.Children))
		return false, nil
	}

	if err := o.swapAndApply(ctx, root, i, j, win.ActivePane); err != nil {
		return false, err
	}
	return true, nil
}

// MoveColumn swaps a column with its left or right neighbour, wrapping
// around at either end.
func (o *Operator) MoveColumn(ctx context.Context, ref Ref, dir Direction) (applied bool, err error) {
	ctx, span := tracer.Start(ctx, "column.move", trace.WithAttributes(
		attribute.String("column", ref.String()),
		attribute.String("direction", dir.String()),
	))
	defer func() { o.finish(ctx, span, "move", applied, err) }()

	win, root, err := o.snapshot(ctx)
	if err != nil {
		return false, err
	}
	if root.Kind != layout.HBox {
		o.log().Info("not a column layout, nothing to move")
		return false, nil
	}

	col := ref.Index - 1
	if ref.Current {
		if col = columnOf(root, win.ActivePane); col < 0 {
			return false, fmt.Errorf("%w: %s", ErrActivePaneNotFound, win.ActivePane)
		}
	}
	if !inRange(root, col) {
		o.log().Info("column out of range", "column", ref, "columns", len(root.Children))
		return false, nil
	}

	n := len(root.Children)
	next := (col + 1) % n
	if dir == Left {
		next = (col - 1 + n) % n
	}
	if next == col {
		return false, nil
	}

	if err := o.swapAndApply(ctx, root, col, next, win.ActivePane); err != nil {
		return false, err
	}
	return true, nil
}

// swapAndApply exchanges columns i and j, lays the row out again from the
// columns' current widths, and reconciles the window.
func (o *Operator) swapAndApply(ctx context.Context, root *layout.Box, i, j int, activePane string) error {
	root.Children[i], root.Children[j] = root.Children[j], root.Children[i]
	if err := root.Adjust(root.Extents()); err != nil {
		return err
	}
	return o.ApplyLayout(ctx, root, activePane)
}

// snapshot reads the live window once and parses its layout.
func (o *Operator) snapshot(ctx context.Context) (model.Window, *layout.Box, error) {
	win, err := o.Mux.Window(ctx)
	if err != nil {
		return model.Window{}, nil, err
	}
	root, err := layout.Parse(win.Layout)
	if err != nil {
		var se *layout.SyntaxError
		switch {
		case errors.Is(err, layout.ErrChecksumMismatch):
			o.Metrics.RecordParseError(ctx, "checksum")
		case errors.As(err, &se):
			o.Metrics.RecordParseError(ctx, "syntax")
		}
		return model.Window{}, nil, fmt.Errorf("parse window layout %q: %w", win.Layout, err)
	}
	if err := root.Validate(); err != nil {
		return model.Window{}, nil, fmt.Errorf("window layout %q: %w", win.Layout, err)
	}
	o.log().Debug("window", "layout", win.Layout, "active", win.ActivePane, "kind", root.Kind, "columns", len(root.Children))
	return win, root, nil
}

func (o *Operator) finish(ctx context.Context, span trace.Span, op string, applied bool, err error) {
	outcome := pcotel.OutcomeNoop
	switch {
	case err != nil:
		outcome = pcotel.OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case applied:
		outcome = pcotel.OutcomeApplied
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	o.Metrics.RecordOperation(ctx, op, outcome)
	span.End()
}

// columnOf returns the index of the column holding paneID, or -1.
func columnOf(root *layout.Box, paneID string) int {
	for i, c := range root.Children {
		if c.FindPane(paneID) != nil {
			return i
		}
	}
	return -1
}

func inRange(root *layout.Box, i int) bool {
	return i >= 0 && i < len(root.Children)
}
