// Package layout models a tmux window layout as a tree of boxes.
//
// A layout string such as "b25d,80x24,0,0{40x24,0,0,1,39x24,41,0,2}" parses
// into a Box tree. The tree can be queried (panes, minimum sizes), resized
// proportionally with Adjust, and serialized back into the exact string
// format tmux accepts for select-layout.
package layout

import "fmt"

// Kind is the type of a layout node.
type Kind int

const (
	// Pane is a leaf holding one terminal pane.
	Pane Kind = iota
	// HBox lays its children out left to right.
	HBox
	// VBox lays its children out top to bottom.
	VBox
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Pane:
		return "pane"
	case HBox:
		return "hbox"
	case VBox:
		return "vbox"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Box is a node of the layout tree. Containers own their children; a child
// is never referenced from two parents.
type Box struct {
	Kind   Kind
	Width  int
	Height int
	X      int
	Y      int

	// Children is non-empty for HBox and VBox, nil for Pane.
	Children []*Box

	// PaneID is the tmux pane id including the '%' prefix. Set only for Pane.
	PaneID string
}

// NewPane returns a leaf box.
func NewPane(id string, w, h, x, y int) *Box {
	return &Box{Kind: Pane, Width: w, Height: h, X: x, Y: y, PaneID: id}
}

// NewContainer returns an HBox or VBox holding children.
func NewContainer(kind Kind, w, h, x, y int, children ...*Box) *Box {
	return &Box{Kind: kind, Width: w, Height: h, X: x, Y: y, Children: children}
}

// IsContainer reports whether b is an HBox or VBox.
func (b *Box) IsContainer() bool {
	return b.Kind == HBox || b.Kind == VBox
}

// Panes returns the leaves of the tree depth-first, children in stored order.
// This order is the order tmux assigns panes to layout cells.
func (b *Box) Panes() []*Box {
	var out []*Box
	b.collectPanes(&out)
	return out
}

func (b *Box) collectPanes(out *[]*Box) {
	if b.Kind == Pane {
		*out = append(*out, b)
		return
	}
	for _, c := range b.Children {
		c.collectPanes(out)
	}
}

// PaneIDs returns the ids of Panes() in the same order.
func (b *Box) PaneIDs() []string {
	panes := b.Panes()
	ids := make([]string, len(panes))
	for i, p := range panes {
		ids[i] = p.PaneID
	}
	return ids
}

// FindPane returns the first pane with the given id, or nil.
func (b *Box) FindPane(id string) *Box {
	if b.Kind == Pane {
		if b.PaneID == id {
			return b
		}
		return nil
	}
	for _, c := range b.Children {
		if p := c.FindPane(id); p != nil {
			return p
		}
	}
	return nil
}

// FirstPane descends through first children until it reaches a pane.
func (b *Box) FirstPane() *Box {
	for b.Kind != Pane && len(b.Children) > 0 {
		b = b.Children[0]
	}
	return b
}

// MinSize returns the smallest width and height the subtree can occupy.
// A pane needs one cell. A container needs the sum of its children along
// its axis plus one separator between each pair, and the largest child
// minimum across it.
func (b *Box) MinSize() (w, h int) {
	if b.Kind == Pane {
		return 1, 1
	}
	for i, c := range b.Children {
		cw, ch := c.MinSize()
		sep := 0
		if i > 0 {
			sep = 1
		}
		switch b.Kind {
		case HBox:
			w += cw + sep
			h = max(h, ch)
		case VBox:
			h += ch + sep
			w = max(w, cw)
		}
	}
	return w, h
}

// along returns the extent of b on its parent's stacking axis.
func (b *Box) along(axis Kind) int {
	if axis == HBox {
		return b.Width
	}
	return b.Height
}

// Extents returns the along-axis extent of each child, the weights that
// preserve the current proportions when passed to Adjust.
func (b *Box) Extents() []int {
	out := make([]int, len(b.Children))
	for i, c := range b.Children {
		out[i] = c.along(b.Kind)
	}
	return out
}

// Validate checks the structural invariants: pane ids present and unique,
// containers non-empty.
func (b *Box) Validate() error {
	seen := make(map[string]bool)
	return b.validate(seen)
}

func (b *Box) validate(seen map[string]bool) error {
	switch b.Kind {
	case Pane:
		if b.PaneID == "" {
			return fmt.Errorf("pane at %d,%d has no id", b.X, b.Y)
		}
		if len(b.Children) > 0 {
			return fmt.Errorf("pane %s has children", b.PaneID)
		}
		if seen[b.PaneID] {
			return fmt.Errorf("duplicate pane id %s", b.PaneID)
		}
		seen[b.PaneID] = true
		return nil
	case HBox, VBox:
		if len(b.Children) == 0 {
			return fmt.Errorf("empty %s at %d,%d", b.Kind, b.X, b.Y)
		}
		for _, c := range b.Children {
			if err := c.validate(seen); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown box kind %d", int(b.Kind))
	}
}
