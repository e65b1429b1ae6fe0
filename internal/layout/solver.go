package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidWeights is returned by Adjust when the weights do not match the
// children one to one or are not all positive.
var ErrInvalidWeights = errors.New("invalid weights")

// Adjust distributes b's along-axis extent among its children in proportion
// to weights, one per child, then lays out every subtree. Children are
// stacked from b's origin with a one-cell separator between siblings and
// take b's cross-axis extent.
//
// A child whose proportional share would not exceed its minimum size is
// pinned to that minimum and leaves the pool; shares are recomputed until
// no more children pin. The rest get floor(share+0.01), taken in order from
// a shrinking pool so the last one absorbs the rounding remainder. No child
// is ever sized below its minimum.
//
// If b is smaller than the sum of its children's minima every child ends up
// at its minimum and the children overflow b.
func (b *Box) Adjust(weights []int) error {
	if b.Kind == Pane {
		return nil
	}
	if len(weights) != len(b.Children) {
		return fmt.Errorf("%w: %d weights for %d children", ErrInvalidWeights, len(weights), len(b.Children))
	}
	total := 0
	for i, w := range weights {
		if w <= 0 {
			return fmt.Errorf("%w: weight %d of child %d", ErrInvalidWeights, w, i)
		}
		total += w
	}

	sizes := solve(b.along(b.Kind)-(len(b.Children)-1), weights, total, b.childMinima())

	cursor := b.X
	if b.Kind == VBox {
		cursor = b.Y
	}
	for i, c := range b.Children {
		var err error
		if b.Kind == HBox {
			err = c.SetGeometry(cursor, b.Y, sizes[i], b.Height)
		} else {
			err = c.SetGeometry(b.X, cursor, b.Width, sizes[i])
		}
		if err != nil {
			return err
		}
		cursor += sizes[i] + 1
	}
	return nil
}

// SetGeometry moves and resizes b, then re-lays out its children using
// their current along-axis extents as weights.
func (b *Box) SetGeometry(x, y, w, h int) error {
	b.X, b.Y, b.Width, b.Height = x, y, w, h
	if b.Kind == Pane {
		return nil
	}
	return b.Adjust(b.Extents())
}

func (b *Box) childMinima() []int {
	out := make([]int, len(b.Children))
	for i, c := range b.Children {
		w, h := c.MinSize()
		if b.Kind == HBox {
			out[i] = w
		} else {
			out[i] = h
		}
	}
	return out
}

// solve returns the extent of each child given the space left after
// separators. It does not mutate its arguments.
func solve(available int, weights []int, total int, minima []int) []int {
	sizes := make([]int, len(weights))
	pinned := make([]bool, len(weights))

	for {
		changed := false
		for i, w := range weights {
			if pinned[i] {
				continue
			}
			if share(w, total, available) <= minima[i] {
				sizes[i] = minima[i]
				pinned[i] = true
				total -= w
				available -= minima[i]
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for i, w := range weights {
		if pinned[i] {
			continue
		}
		size := max(share(w, total, available), minima[i])
		sizes[i] = size
		total -= w
		available -= size
	}
	return sizes
}

// share is the floor of w/total of available, nudged up by 0.01 so that
// exact proportions survive float rounding.
func share(w, total, available int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(w)/float64(total)*float64(available) + 0.01)
}
