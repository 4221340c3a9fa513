package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/prefs"
	"github.com/harperreed/dealgrid/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, opts ...Option) (Model, *grid.Grid) {
	t.Helper()
	reg := columns.Default()
	g := grid.New(store.NewSample(), reg, prefs.Defaults(reg))
	return NewModel(g, opts...), g
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func viewIDs(g *grid.Grid) []string {
	var out []string
	for _, d := range g.View() {
		out = append(out, d.ID)
	}
	return out
}

func TestNavigationAndSelection(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "j", "j")
	assert.Equal(t, 2, g.Cursor())

	m = press(t, m, " ")
	assert.Equal(t, []string{"3"}, g.SelectedIDs())

	m = press(t, m, "k", "k", "r")
	assert.Equal(t, []string{"1", "2", "3"}, g.SelectedIDs())

	m = press(t, m, "j", "j", "j", "t")
	assert.Equal(t, []string{"1", "2", "3", "4"}, g.SelectedIDs())

	m = press(t, m, "a")
	assert.True(t, g.AllSelected())

	m = press(t, m, "A")
	assert.Equal(t, 0, g.SelectedCount())

	// cursor stops at the last row
	press(t, m, "j", "j", "j", "j", "j", "j")
	assert.Equal(t, 5, g.Cursor())
}

func TestSortFocusedColumn(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "l", "l", "l", "l", "s")
	assert.Equal(t, []string{"2", "4", "6", "3", "1", "5"}, viewIDs(g))

	m = press(t, m, "s")
	assert.Equal(t, []string{"5", "1", "3", "6", "4", "2"}, viewIDs(g))

	press(t, m, "h", "S")
	keys := g.State().SortKeys
	require.Len(t, keys, 2)
	assert.Equal(t, "amount", keys[0].Key)
	assert.Equal(t, "company", keys[1].Key)
}

func TestSearchMode(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "/")
	assert.Equal(t, ViewSearch, m.Mode())

	m = typeText(t, m, "cloud")
	assert.Equal(t, []string{"4"}, viewIDs(g))

	m = press(t, m, "enter")
	assert.Equal(t, ViewList, m.Mode())
	assert.Equal(t, "cloud", g.State().Filters.Search)

	m = press(t, m, "/", "esc")
	assert.Equal(t, ViewList, m.Mode())
	assert.Len(t, g.View(), 6)
}

func TestSearchSavesOnlyWhenCommitted(t *testing.T) {
	m, g := newTestModel(t)
	var saved []prefs.Preferences
	g.OnChange(func(p prefs.Preferences) { saved = append(saved, p) })

	m = press(t, m, "/")
	m = typeText(t, m, "cloud")
	assert.Equal(t, []string{"4"}, viewIDs(g))
	assert.Empty(t, saved)

	m = press(t, m, "enter")
	require.Len(t, saved, 1)
	assert.Equal(t, "cloud", saved[0].Filters.Search)

	press(t, m, "/", "esc")
	require.Len(t, saved, 2)
	assert.Equal(t, "", saved[1].Filters.Search)
}

func TestBulkStageAndDelete(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "5")
	assert.Equal(t, "Select deals first", m.Status())

	m = press(t, m, " ", "j", "t", "5")
	assert.Equal(t, 3, g.Totals().WonDeals)

	m = press(t, m, "d")
	assert.Equal(t, ViewConfirmDelete, m.Mode())
	assert.Contains(t, m.View(), "DELETE CONFIRMATION")

	m = press(t, m, "n")
	assert.Equal(t, ViewList, m.Mode())
	assert.Equal(t, 6, g.Len())

	m = press(t, m, "d", "y")
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, "Deleted 2 deal(s)", m.Status())
	assert.Equal(t, 0, g.SelectedCount())
}

func TestDeleteCursorDealWithoutSelection(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "j", "d")
	assert.Contains(t, m.View(), "Marketing Automation Platform")
	press(t, m, "y")
	_, err := g.Get("2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEditCell(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "l", "l", "l", "l", "i")
	require.Equal(t, ViewEdit, m.Mode())

	m = press(t, m, "ctrl+u")
	m = typeText(t, m, "99000")
	m = press(t, m, "enter")
	d, err := g.Get("1")
	require.NoError(t, err)
	assert.Equal(t, models.Dollars(99000), d.Amount)
	assert.Equal(t, "Saved amount", m.Status())

	m = press(t, m, "i", "ctrl+u")
	m = typeText(t, m, "lots")
	m = press(t, m, "enter")
	assert.Contains(t, m.Status(), "Edit rejected")
	d, _ = g.Get("1")
	assert.Equal(t, models.Dollars(99000), d.Amount)
}

func TestColumnKeys(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "v")
	cols := g.VisibleColumns()
	require.Len(t, cols, 9)
	assert.Equal(t, "stage", cols[0].Key)

	m = press(t, m, "]")
	assert.Equal(t, "stage", g.VisibleColumns()[1].Key)

	press(t, m, "+")
	assert.Equal(t, 18, g.VisibleColumns()[1].Width)

	m = press(t, m, "V", "c")
	assert.Len(t, g.VisibleColumns(), 10)
	assert.True(t, g.State().ShowColumnPanel)
	assert.Contains(t, m.View(), "COLUMNS")
}

func TestExpandAndNewDeal(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "enter")
	assert.True(t, g.IsExpanded("1"))
	assert.Contains(t, m.View(), "John Smith")

	m = press(t, m, "n")
	require.Equal(t, ViewEdit, m.Mode())
	assert.Equal(t, 7, g.Len())

	m = press(t, m, "ctrl+u")
	m = typeText(t, m, "Fresh Pilot")
	press(t, m, "enter")

	var names []string
	for _, d := range g.View() {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "Fresh Pilot")
}

func TestFilterQueryAndPanel(t *testing.T) {
	m, g := newTestModel(t)

	m = press(t, m, "f")
	assert.True(t, g.State().ShowFilters)
	assert.Contains(t, m.View(), "FILTERS")

	m = press(t, m, "w", "ctrl+u")
	m = typeText(t, m, "stage=won")
	m = press(t, m, "enter")
	assert.Equal(t, []string{"5"}, viewIDs(g))
	assert.Equal(t, "1 filter(s) active", m.Status())

	m = press(t, m, "x")
	assert.Len(t, g.View(), 6)
	assert.NotContains(t, m.View(), "amount $")

	m = press(t, m, "w", "ctrl+u")
	m = typeText(t, m, "max=50000")
	m = press(t, m, "enter")
	assert.Contains(t, m.View(), "amount $0-$50,000")
}

func TestExportSelected(t *testing.T) {
	dir := t.TempDir()
	clock := func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	m, _ := newTestModel(t, WithExportDir(dir), WithClock(clock))

	m = press(t, m, "e")
	assert.Equal(t, "Select deals first", m.Status())

	m = press(t, m, "a", "e")
	path := filepath.Join(dir, "deals-export-2024-05-01.csv")
	assert.Equal(t, "Exported 6 deal(s) to "+path, m.Status())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Enterprise Software License - Q1 2024")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewRendersGrid(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "DEALS PIPELINE")
	assert.Contains(t, out, "Deal Name")
	assert.Contains(t, out, "6 of 6 deals")
	assert.Contains(t, out, "0 selected")
}
