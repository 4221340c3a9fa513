// ABOUTME: Row selection state machine for the deals grid
// ABOUTME: Handles plain, toggle and range clicks against the current view order
package selection

import (
	"slices"

	"github.com/harperreed/dealgrid/models"
)

// Mode is how a row click combines with the existing selection.
type Mode int

const (
	Plain Mode = iota
	Toggle
	Range
)

func (m Mode) String() string {
	switch m {
	case Toggle:
		return "toggle"
	case Range:
		return "range"
	default:
		return "plain"
	}
}

// State is the selected id set plus the anchor used by range clicks.
// The anchor is an index into the view the last click was made against.
type State struct {
	selected map[string]bool
	anchor   int
	anchorID string
	anchored bool
}

func New() *State {
	return &State{selected: map[string]bool{}}
}

// Click applies a row click at view index i. Out-of-range indices are ignored.
func (s *State) Click(view []models.Deal, i int, mode Mode) {
	if i < 0 || i >= len(view) {
		return
	}
	id := view[i].ID

	switch mode {
	case Toggle:
		if s.selected[id] {
			delete(s.selected, id)
		} else {
			s.selected[id] = true
		}
		s.setAnchor(i, id)
	case Range:
		if !s.anchored || s.anchor >= len(view) {
			s.Click(view, i, Plain)
			return
		}
		lo, hi := min(s.anchor, i), max(s.anchor, i)
		for _, d := range view[lo : hi+1] {
			s.selected[d.ID] = true
		}
	default:
		clear(s.selected)
		s.selected[id] = true
		s.setAnchor(i, id)
	}
}

// SelectAll selects every deal in view and clears the anchor.
func (s *State) SelectAll(view []models.Deal) {
	clear(s.selected)
	for _, d := range view {
		s.selected[d.ID] = true
	}
	s.clearAnchor()
}

func (s *State) DeselectAll() {
	clear(s.selected)
	s.clearAnchor()
}

// Set replaces the selection with ids and clears the anchor.
func (s *State) Set(ids []string) {
	clear(s.selected)
	for _, id := range ids {
		s.selected[id] = true
	}
	s.clearAnchor()
}

// Remove purges ids, typically after they were deleted from the store.
func (s *State) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.selected, id)
		if s.anchored && s.anchorID == id {
			s.clearAnchor()
		}
	}
}

// Reanchor moves the anchor to the anchored deal's position in a recomputed view,
// clearing it when that deal is no longer visible.
func (s *State) Reanchor(view []models.Deal) {
	if !s.anchored {
		return
	}
	i := slices.IndexFunc(view, func(d models.Deal) bool { return d.ID == s.anchorID })
	if i < 0 {
		s.clearAnchor()
		return
	}
	s.anchor = i
}

func (s *State) IsSelected(id string) bool {
	return s.selected[id]
}

func (s *State) Len() int {
	return len(s.selected)
}

// IDs returns the selected ids in sorted order.
func (s *State) IDs() []string {
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// InView returns the selected deals in view order.
func (s *State) InView(view []models.Deal) []models.Deal {
	var out []models.Deal
	for _, d := range view {
		if s.selected[d.ID] {
			out = append(out, d)
		}
	}
	return out
}

// Anchor returns the anchor index and whether one is set.
func (s *State) Anchor() (int, bool) {
	return s.anchor, s.anchored
}

// AllSelected reports whether view is non-empty and every deal in it is selected.
func (s *State) AllSelected(view []models.Deal) bool {
	if len(view) == 0 {
		return false
	}
	for _, d := range view {
		if !s.selected[d.ID] {
			return false
		}
	}
	return true
}

// Indeterminate reports a partial selection of view.
func (s *State) Indeterminate(view []models.Deal) bool {
	return len(s.selected) > 0 && !s.AllSelected(view)
}

func (s *State) setAnchor(i int, id string) {
	s.anchor, s.anchorID, s.anchored = i, id, true
}

func (s *State) clearAnchor() {
	s.anchor, s.anchorID, s.anchored = 0, "", false
}
