package column

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/pane-columns/internal/layout"
	"github.com/timvw/pane-columns/internal/model"
)

// ErrPaneSetMismatch means the live window and the target layout do not hold
// the same panes. Nothing is sent to the multiplexer when this happens.
var ErrPaneSetMismatch = errors.New("pane set mismatch")

// Swap exchanges the cells of two panes. A is the pane currently sitting
// where B belongs.
type Swap struct {
	A, B string
}

// PlanSwaps returns the swaps that reorder live into target, scanning
// positions left to right and fixing the first mismatch each time. Both
// slices must be permutations of the same unique ids. The plan holds at
// most len(live)-1 swaps.
func PlanSwaps(live, target []string) ([]Swap, error) {
	if err := samePanes(live, target); err != nil {
		return nil, err
	}

	cur := slices.Clone(live)
	pos := make(map[string]int, len(cur))
	for i, id := range cur {
		pos[id] = i
	}

	var plan []Swap
	for i, want := range target {
		if cur[i] == want {
			continue
		}
		j := pos[want]
		plan = append(plan, Swap{A: cur[i], B: want})
		cur[i], cur[j] = cur[j], cur[i]
		pos[cur[i]], pos[cur[j]] = i, j
	}
	return plan, nil
}

func samePanes(live, target []string) error {
	if len(live) != len(target) {
		return fmt.Errorf("%w: window has %d panes, layout has %d", ErrPaneSetMismatch, len(live), len(target))
	}
	seen := make(map[string]int, len(live))
	for _, id := range live {
		seen[id]++
		if seen[id] > 1 {
			return fmt.Errorf("%w: pane %s listed twice", ErrPaneSetMismatch, id)
		}
	}
	for _, id := range target {
		if seen[id] != 1 {
			return fmt.Errorf("%w: layout pane %s not in window %v", ErrPaneSetMismatch, id, live)
		}
		seen[id]++
	}
	return nil
}

// orient picks swap-pane arguments for s. When the active pane takes part
// it is the -t pane and focus follows it; otherwise the swap is detached
// and focus stays put.
func orient(s Swap, active string) (src, dst string, detached bool) {
	switch active {
	case s.A:
		return s.B, s.A, false
	case s.B:
		return s.A, s.B, false
	default:
		return s.A, s.B, true
	}
}

// ApplyLayout makes the live window match root: it verifies the window holds
// exactly root's panes, applies root's geometry with select-layout, then
// swaps panes until the live order equals root's depth-first pane order.
func (o *Operator) ApplyLayout(ctx context.Context, root *layout.Box, activePane string) error {
	ctx, span := tracer.Start(ctx, "column.apply_layout")
	defer span.End()

	panes, err := o.Mux.ListPanes(ctx)
	if err != nil {
		return fmt.Errorf("list panes: %w", err)
	}
	live := model.PaneIDs(panes)
	target := root.PaneIDs()

	plan, err := PlanSwaps(live, target)
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.Int("panes", len(target)),
		attribute.Int("swaps", len(plan)),
	)

	serialized := root.String()
	o.log().Debug("applying layout", "layout", serialized, "live", live, "target", target, "swaps", len(plan))
	if err := o.Mux.SelectLayout(ctx, serialized); err != nil {
		return err
	}

	for i, s := range plan {
		src, dst, detached := orient(s, activePane)
		span.AddEvent("swap", trace.WithAttributes(
			attribute.String("src", src),
			attribute.String("dst", dst),
		))
		if err := o.Mux.SwapPane(ctx, src, dst, detached); err != nil {
			o.Metrics.RecordSwaps(ctx, i)
			return err
		}
	}
	o.Metrics.RecordSwaps(ctx, len(plan))
	return nil
}
