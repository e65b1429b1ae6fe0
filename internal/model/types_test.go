package model

import (
	"reflect"
	"testing"
)

func TestLastPaneOption(t *testing.T) {
	tests := []struct {
		column int
		want   string
	}{
		{0, "@column_0_last_pane"},
		{2, "@column_2_last_pane"},
		{11, "@column_11_last_pane"},
	}

	for _, tt := range tests {
		if got := LastPaneOption(tt.column); got != tt.want {
			t.Errorf("LastPaneOption(%d): got %q, want %q", tt.column, got, tt.want)
		}
	}
}

func TestPaneIDs(t *testing.T) {
	panes := []Pane{{ID: "%3", Index: 0}, {ID: "%1", Index: 1, Active: true}, {ID: "%2", Index: 2}}
	want := []string{"%3", "%1", "%2"}
	if got := PaneIDs(panes); !reflect.DeepEqual(got, want) {
		t.Errorf("PaneIDs: got %v, want %v", got, want)
	}
	if got := PaneIDs(nil); len(got) != 0 {
		t.Errorf("PaneIDs(nil): got %v, want empty", got)
	}
}
