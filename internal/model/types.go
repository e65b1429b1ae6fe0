// Package model holds the typed records read from the terminal multiplexer.
// Each query has its own record type, decoded positionally from the
// multiplexer's delimited output.
package model

import "fmt"

// Window is the live state of the window being operated on.
type Window struct {
	// ID is the multiplexer window id (e.g., "@3").
	ID string `json:"id"`
	// Layout is the checksummed layout string (e.g., "b25e,80x24,0,0,1").
	Layout string `json:"layout"`
	// ActivePane is the id of the focused pane (e.g., "%1").
	ActivePane string `json:"active_pane"`
}

// Pane is one live pane, as listed by the multiplexer.
type Pane struct {
	// ID is the pane id including the '%' prefix.
	ID string `json:"id"`
	// Index is the pane's position in the window's pane list.
	Index int `json:"index"`
	// Active is true for the focused pane.
	Active bool `json:"active"`
}

// LastPaneOption returns the window option that remembers the last active
// pane of the column with the given 0-based index.
func LastPaneOption(column int) string {
	return fmt.Sprintf("@column_%d_last_pane", column)
}

// PaneIDs returns the ids of panes in order.
func PaneIDs(panes []Pane) []string {
	ids := make([]string, len(panes))
	for i, p := range panes {
		ids[i] = p.ID
	}
	return ids
}
