// ABOUTME: Tests for the row selection state machine
// ABOUTME: Walks plain, range and toggle clicks, deletion and select-all scenarios
package selection

import (
	"testing"

	"github.com/harperreed/dealgrid/models"
	"github.com/stretchr/testify/assert"
)

func view(ids ...string) []models.Deal {
	out := make([]models.Deal, len(ids))
	for i, id := range ids {
		out[i] = models.Deal{ID: id}
	}
	return out
}

func TestClickScenario(t *testing.T) {
	v := view("A", "B", "C", "D")
	s := New()

	s.Click(v, 2, Plain)
	assert.Equal(t, []string{"C"}, s.IDs())
	anchor, ok := s.Anchor()
	assert.True(t, ok)
	assert.Equal(t, 2, anchor)

	s.Click(v, 0, Range)
	assert.Equal(t, []string{"A", "B", "C"}, s.IDs())
	anchor, _ = s.Anchor()
	assert.Equal(t, 2, anchor, "range click keeps the anchor")

	s.Click(v, 3, Toggle)
	assert.Equal(t, []string{"A", "B", "C", "D"}, s.IDs())
	anchor, _ = s.Anchor()
	assert.Equal(t, 3, anchor)

	s.Remove("B")
	assert.Equal(t, []string{"A", "C", "D"}, s.IDs())
}

func TestToggleDeselects(t *testing.T) {
	v := view("A", "B")
	s := New()
	s.Click(v, 0, Toggle)
	s.Click(v, 1, Toggle)
	s.Click(v, 0, Toggle)
	assert.Equal(t, []string{"B"}, s.IDs())
}

func TestRangeWithoutAnchorActsAsPlain(t *testing.T) {
	v := view("A", "B", "C")
	s := New()
	s.Set([]string{"A"})

	s.Click(v, 1, Range)

	assert.Equal(t, []string{"B"}, s.IDs())
	anchor, ok := s.Anchor()
	assert.True(t, ok)
	assert.Equal(t, 1, anchor)
}

func TestOutOfRangeClickIsNoop(t *testing.T) {
	v := view("A")
	s := New()
	s.Click(v, 0, Plain)
	s.Click(v, 5, Plain)
	s.Click(v, -1, Toggle)
	assert.Equal(t, []string{"A"}, s.IDs())
}

func TestSelectAllOnFilteredView(t *testing.T) {
	s := New()
	filtered := view("B", "D", "F")
	s.Click(view("A"), 0, Plain)

	s.SelectAll(filtered)

	assert.Equal(t, []string{"B", "D", "F"}, s.IDs())
	assert.True(t, s.AllSelected(filtered))
	assert.False(t, s.Indeterminate(filtered))
	_, ok := s.Anchor()
	assert.False(t, ok)

	s.DeselectAll()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.AllSelected(filtered))
}

func TestDerivedFlags(t *testing.T) {
	v := view("A", "B")
	s := New()
	assert.False(t, s.AllSelected(nil))
	assert.False(t, s.Indeterminate(v))

	s.Click(v, 0, Plain)
	assert.True(t, s.Indeterminate(v))
	assert.False(t, s.AllSelected(v))
}

func TestReanchor(t *testing.T) {
	s := New()
	s.Click(view("A", "B", "C"), 1, Plain)

	s.Reanchor(view("C", "A", "B"))
	anchor, ok := s.Anchor()
	assert.True(t, ok)
	assert.Equal(t, 2, anchor)

	s.Click(view("C", "A", "B"), 0, Range)
	assert.Equal(t, []string{"A", "B", "C"}, s.IDs())

	s.Reanchor(view("A", "C"))
	_, ok = s.Anchor()
	assert.False(t, ok)
}

func TestRemoveClearsAnchorOfDeleted(t *testing.T) {
	v := view("A", "B")
	s := New()
	s.Click(v, 1, Plain)
	s.Remove("B")
	_, ok := s.Anchor()
	assert.False(t, ok)
}

func TestInViewKeepsViewOrder(t *testing.T) {
	s := New()
	s.Set([]string{"C", "A"})
	got := s.InView(view("C", "B", "A"))
	assert.Equal(t, "C", got[0].ID)
	assert.Equal(t, "A", got[1].ID)
}
