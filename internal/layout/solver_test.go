package layout

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
)

func widths(b *Box) []int {
	out := make([]int, len(b.Children))
	for i, c := range b.Children {
		out[i] = c.Width
	}
	return out
}

// checkLayout verifies that every container in b exactly tiles its extent:
// children stacked from the origin with one-cell separators, each taking the
// full cross-axis extent and at least its minimum along the axis.
func checkLayout(t *testing.T, b *Box) {
	t.Helper()
	if b.Kind == Pane {
		return
	}
	n := len(b.Children)
	sum := 0
	cursor := b.X
	if b.Kind == VBox {
		cursor = b.Y
	}
	for i, c := range b.Children {
		minW, minH := c.MinSize()
		switch b.Kind {
		case HBox:
			if c.X != cursor || c.Y != b.Y || c.Height != b.Height {
				t.Errorf("hbox child %d: got %dx%d,%d,%d, want x=%d y=%d h=%d",
					i, c.Width, c.Height, c.X, c.Y, cursor, b.Y, b.Height)
			}
			if c.Width < minW {
				t.Errorf("hbox child %d: width %d below minimum %d", i, c.Width, minW)
			}
			sum += c.Width
			cursor += c.Width + 1
		case VBox:
			if c.Y != cursor || c.X != b.X || c.Width != b.Width {
				t.Errorf("vbox child %d: got %dx%d,%d,%d, want x=%d y=%d w=%d",
					i, c.Width, c.Height, c.X, c.Y, b.X, cursor, b.Width)
			}
			if c.Height < minH {
				t.Errorf("vbox child %d: height %d below minimum %d", i, c.Height, minH)
			}
			sum += c.Height
			cursor += c.Height + 1
		}
		checkLayout(t, c)
	}
	if got, want := sum+n-1, b.along(b.Kind); got != want {
		t.Errorf("%s at %d,%d: children span %d, want %d", b.Kind, b.X, b.Y, got, want)
	}
}

func threeColumns() *Box {
	return NewContainer(HBox, 80, 24, 0, 0,
		NewPane("%1", 26, 24, 0, 0),
		NewPane("%2", 26, 24, 27, 0),
		NewPane("%3", 26, 24, 54, 0),
	)
}

func TestAdjust_EvenWeights(t *testing.T) {
	tests := []struct {
		width int
		cols  int
		want  []int
	}{
		{80, 3, []int{26, 26, 26}},
		{81, 3, []int{26, 26, 27}},
		{82, 3, []int{26, 27, 27}},
		{80, 2, []int{39, 40}},
		{80, 1, []int{80}},
		{100, 7, []int{13, 13, 13, 13, 14, 14, 14}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.width, tt.cols), func(t *testing.T) {
			b := NewContainer(HBox, tt.width, 24, 0, 0)
			weights := make([]int, tt.cols)
			for i := range weights {
				b.Children = append(b.Children, NewPane(fmt.Sprintf("%%%d", i), 1, 24, 0, 0))
				weights[i] = 1
			}
			if err := b.Adjust(weights); err != nil {
				t.Fatalf("Adjust() error: %v", err)
			}
			if got := widths(b); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("widths: got %v, want %v", got, tt.want)
			}
			checkLayout(t, b)
		})
	}
}

func TestAdjust_Proportional(t *testing.T) {
	b := threeColumns()
	if err := b.Adjust([]int{1, 2, 1}); err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	if got, want := widths(b), []int{19, 39, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("widths: got %v, want %v", got, want)
	}
	checkLayout(t, b)
}

func TestAdjust_CurrentExtentsAreStable(t *testing.T) {
	b := mustParse(t, "159x48,0,0{53x48,0,0[53x24,0,0,7,53x23,0,25,3],52x48,54,0,1,52x48,107,0[52x10,107,0,9,52x37,107,11,2]}")
	before := Serialize(b, false)
	if err := b.Adjust(b.Extents()); err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	if after := Serialize(b, false); after != before {
		t.Errorf("Adjust(Extents()) changed layout:\n got  %s\n want %s", after, before)
	}
}

func TestAdjust_PinsToMinimum(t *testing.T) {
	// The second column holds five panes side by side and needs 9 cells.
	wide := NewContainer(HBox, 5, 24, 0, 0)
	for i := 0; i < 5; i++ {
		wide.Children = append(wide.Children, NewPane(fmt.Sprintf("%%%d", i+10), 1, 24, 0, 0))
	}
	b := NewContainer(HBox, 20, 24, 0, 0, NewPane("%1", 1, 24, 0, 0), wide)

	if err := b.Adjust([]int{3, 1}); err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	if got, want := widths(b), []int{10, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("widths: got %v, want %v", got, want)
	}
	if got, want := widths(wide), []int{1, 1, 1, 1, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("inner widths: got %v, want %v", got, want)
	}
	checkLayout(t, b)
}

func TestAdjust_VBoxRecursesIntoRows(t *testing.T) {
	b := mustParse(t, "80x24,0,0[80x12,0,0{40x12,0,0,1,39x12,41,0,2},80x11,0,13,3]")
	if err := b.Adjust([]int{1, 1}); err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	if got, want := Serialize(b, false), "80x24,0,0[80x11,0,0{40x11,0,0,1,39x11,41,0,2},80x12,0,12,3]"; got != want {
		t.Errorf("layout: got %s, want %s", got, want)
	}
	checkLayout(t, b)
}

func TestAdjust_Degenerate(t *testing.T) {
	b := NewContainer(HBox, 3, 24, 0, 0,
		NewPane("%1", 1, 24, 0, 0),
		NewPane("%2", 1, 24, 0, 0),
		NewPane("%3", 1, 24, 0, 0),
	)
	if err := b.Adjust([]int{1, 1, 1}); err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	for i, c := range b.Children {
		if c.Width != 1 {
			t.Errorf("child %d: width %d, want minimum 1", i, c.Width)
		}
	}
}

func TestAdjust_InvalidWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
	}{
		{"too few", []int{1, 1}},
		{"too many", []int{1, 1, 1, 1}},
		{"zero", []int{1, 0, 1}},
		{"negative", []int{1, -2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := threeColumns()
			err := b.Adjust(tt.weights)
			if !errors.Is(err, ErrInvalidWeights) {
				t.Errorf("Adjust(%v): got %v, want ErrInvalidWeights", tt.weights, err)
			}
		})
	}
}

func TestAdjust_PaneIsNoop(t *testing.T) {
	p := NewPane("%1", 80, 24, 0, 0)
	if err := p.Adjust(nil); err != nil {
		t.Errorf("Adjust() on pane: %v", err)
	}
}

func randomTree(r *rand.Rand, depth int, next *int) *Box {
	if depth == 0 || r.IntN(3) == 0 {
		*next++
		return NewPane(fmt.Sprintf("%%%d", *next), 1, 1, 0, 0)
	}
	kind := HBox
	if r.IntN(2) == 0 {
		kind = VBox
	}
	b := NewContainer(kind, 1, 1, 0, 0)
	for n := 1 + r.IntN(4); n > 0; n-- {
		b.Children = append(b.Children, randomTree(r, depth-1, next))
	}
	return b
}

func TestAdjust_RandomTreesTileExactly(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 300; i++ {
		var next int
		b := randomTree(r, 4, &next)
		if b.Kind == Pane {
			continue
		}
		minW, minH := b.MinSize()
		if err := b.SetGeometry(0, 0, minW+r.IntN(120), minH+r.IntN(60)); err != nil {
			t.Fatalf("tree %d: SetGeometry() error: %v", i, err)
		}
		weights := make([]int, len(b.Children))
		for j := range weights {
			weights[j] = 1 + r.IntN(10)
		}
		if err := b.Adjust(weights); err != nil {
			t.Fatalf("tree %d: Adjust(%v) error: %v", i, weights, err)
		}
		checkLayout(t, b)
		if t.Failed() {
			t.Fatalf("tree %d: %s", i, Serialize(b, false))
		}
	}
}
