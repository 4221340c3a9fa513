package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/dealgrid/export"
	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/pipeline"
	"github.com/harperreed/dealgrid/selection"
)

const resizeStep = 2

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("DEALS PIPELINE"))
	s.WriteString("\n")

	if m.viewMode == ViewSearch || m.search.Value() != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n")
	}

	state := m.grid.State()
	if state.ShowFilters {
		s.WriteString(m.renderFilterPanel())
		s.WriteString("\n")
	}
	if state.ShowColumnPanel {
		s.WriteString(m.renderColumnPanel())
		s.WriteString("\n")
	}

	s.WriteString(m.renderTable())
	s.WriteString("\n")

	for _, d := range m.grid.View() {
		if m.grid.IsExpanded(d.ID) {
			s.WriteString(renderDealDetail(d))
			s.WriteString("\n")
		}
	}

	s.WriteString(m.renderTotals())
	s.WriteString("\n")
	s.WriteString(m.renderStatusLine())
	s.WriteString("\n")

	if m.viewMode == ViewEdit || m.viewMode == ViewWhere {
		s.WriteString(m.renderInput())
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTable() string {
	cols := m.grid.VisibleColumns()
	keys := m.grid.State().SortKeys
	focused := m.focusedIndex()

	columns := []table.Column{{Title: m.selectAllMarker(), Width: 3}}
	for i, c := range cols {
		title := c.Label + sortIndicator(keys, c.Key)
		if i == focused {
			title = "›" + title
		}
		columns = append(columns, table.Column{Title: title, Width: c.Width})
	}

	var rows []table.Row
	for _, d := range m.grid.View() {
		row := table.Row{" "}
		if m.grid.IsSelected(d.ID) {
			row[0] = "●"
		}
		for _, c := range cols {
			row = append(row, c.Format(d))
		}
		rows = append(rows, row)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-14, 5)),
	)
	if len(rows) > 0 {
		t.SetCursor(m.grid.Cursor())
	}

	if len(rows) == 0 {
		return t.View() + "\n  No deals match the current filters"
	}
	return t.View()
}

func (m Model) selectAllMarker() string {
	switch {
	case m.grid.AllSelected():
		return "☑"
	case m.grid.Indeterminate():
		return "◐"
	default:
		return "☐"
	}
}

func sortIndicator(keys []pipeline.SortKey, key string) string {
	p := pipeline.SortPriority(keys, key)
	if p == 0 {
		return ""
	}
	arrow := " ▲"
	if keys[p-1].Direction == pipeline.Desc {
		arrow = " ▼"
	}
	if len(keys) > 1 {
		return fmt.Sprintf("%s%d", arrow, p)
	}
	return arrow
}

func (m Model) renderTotals() string {
	t := m.grid.Totals()
	return totalsStyle.Render(fmt.Sprintf("%d of %d deals │ Total %s │ Weighted %s │ Avg %.0f%% │ Won %d │ Lost %d",
		t.TotalDeals, m.grid.Len(), t.TotalValue, t.WeightedValue, t.AvgProbability, t.WonDeals, t.LostDeals))
}

func (m Model) renderStatusLine() string {
	state := m.grid.State()
	parts := []string{fmt.Sprintf("%d selected", m.grid.SelectedCount())}

	if len(state.SortKeys) > 0 {
		var sorts []string
		for _, k := range state.SortKeys {
			sorts = append(sorts, k.String())
		}
		parts = append(parts, "sort: "+strings.Join(sorts, ", "))
	}
	if n := pipeline.ActiveFilterCount(state.Filters) + pipeline.ActiveHeaderFilterCount(state.HeaderFilters); n > 0 {
		parts = append(parts, fmt.Sprintf("%d filter(s)", n))
	}
	if r := state.Filters.Amount; !pipeline.IsUnconstrained(state.Filters) &&
		(r.Min > pipeline.DefaultAmountMin || r.Max < pipeline.DefaultAmountMax) {
		parts = append(parts, fmt.Sprintf("amount %s-%s", models.Dollars(r.Min), models.Dollars(r.Max)))
	}

	line := strings.Join(parts, " │ ")
	if m.status != "" {
		line += " │ " + statusStyle.Render(m.status)
	}
	return line
}

func (m Model) renderListHelp() string {
	help := []string{
		"j/k: Move",
		"h/l: Column",
		"space/t/r: Select",
		"a/A: All/None",
		"s/S: Sort",
		"/: Search",
		"f/c: Panels",
		"enter: Expand",
		"i: Edit",
		"n: New",
		"d/D: Delete/Duplicate",
		"1-6: Stage",
		"e: Export",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

// focusedIndex clamps the focused column to the visible columns.
func (m Model) focusedIndex() int {
	n := len(m.grid.VisibleColumns())
	if n == 0 {
		return 0
	}
	return min(max(m.focusCol, 0), n-1)
}

func (m Model) focusedColumn() (grid.Column, bool) {
	cols := m.grid.VisibleColumns()
	if len(cols) == 0 {
		return grid.Column{}, false
	}
	return cols[m.focusedIndex()], true
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	g := m.grid

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "down", "j":
		g.SetCursor(g.Cursor() + 1)
	case "up", "k":
		g.SetCursor(g.Cursor() - 1)
	case "left", "h":
		m.focusCol = max(m.focusedIndex()-1, 0)
	case "right", "l":
		m.focusCol = min(m.focusedIndex()+1, len(g.VisibleColumns())-1)

	case " ":
		g.ClickRow(g.Cursor(), selection.Plain)
	case "t":
		g.ClickRow(g.Cursor(), selection.Toggle)
	case "r":
		g.ClickRow(g.Cursor(), selection.Range)
	case "a":
		g.SelectAll()
	case "A":
		g.DeselectAll()

	case "s", "S":
		if col, ok := m.focusedColumn(); ok {
			if err := g.ClickSort(col.Key, msg.String() == "S"); err != nil {
				m.status = err.Error()
			}
		}

	case "/":
		m.viewMode = ViewSearch
		return m, m.search.Focus()
	case "f":
		g.TogglePanel(grid.FilterPanel)
	case "c":
		g.TogglePanel(grid.ColumnPanel)
	case "w":
		m.viewMode = ViewWhere
		m.input.SetValue(g.State().Filters.Encode())
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "x":
		g.ClearFilters()
		m.search.SetValue("")
		m.status = "Filters cleared"

	case "[", "]":
		if col, ok := m.focusedColumn(); ok {
			delta := -1
			if msg.String() == "]" {
				delta = 1
			}
			g.MoveColumn(col.Key, delta)
			for i, c := range g.VisibleColumns() {
				if c.Key == col.Key {
					m.focusCol = i
				}
			}
		}
	case "-", "+", "=":
		if col, ok := m.focusedColumn(); ok {
			step := resizeStep
			if msg.String() == "-" {
				step = -resizeStep
			}
			g.ResizeColumn(col.Key, col.Width+step)
		}
	case "v":
		if col, ok := m.focusedColumn(); ok {
			if len(g.VisibleColumns()) == 1 {
				m.status = "Cannot hide the last column"
				break
			}
			g.SetColumnVisible(col.Key, false)
			m.focusCol = m.focusedIndex()
		}
	case "V":
		for _, c := range g.State().Columns {
			if !c.Visible {
				g.SetColumnVisible(c.Key, true)
			}
		}

	case "enter":
		if d, ok := g.CursorDeal(); ok {
			g.ToggleExpanded(d.ID)
		}
	case "i":
		return m.startEdit()
	case "n":
		return m.newDeal()
	case "d":
		return m.confirmDelete()
	case "D":
		dups, err := g.DuplicateSelected()
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Duplicated %d deal(s)", len(dups))
		}
	case "1", "2", "3", "4", "5", "6":
		stage := models.Stages[int(msg.String()[0]-'1')]
		if g.SelectedCount() == 0 {
			m.status = "Select deals first"
			break
		}
		n, err := g.BulkSetStage(stage)
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Moved %d deal(s) to %s", n, stage)
		}
	case "e":
		m.status = m.exportSelected()
	}

	return m, nil
}

func (m Model) exportSelected() string {
	if len(m.grid.SelectedInView()) == 0 {
		return "Select deals first"
	}

	path := filepath.Join(m.exportDir, export.Filename(m.now()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Sprintf("Export failed: %v", err)
	}
	defer func() { _ = f.Close() }()

	n, err := m.grid.ExportSelected(f)
	if err != nil {
		return fmt.Sprintf("Export failed: %v", err)
	}
	return fmt.Sprintf("Exported %d deal(s) to %s", n, path)
}

func (m Model) newDeal() (tea.Model, tea.Cmd) {
	d := m.grid.NewDeal()
	d.Name = "New Deal"
	d.Company = "New Company"

	created, err := m.grid.CreateDeal(d)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	for i, v := range m.grid.View() {
		if v.ID == created.ID {
			m.grid.SetCursor(i)
		}
	}
	m.status = "Created deal"
	return m.openEditor(created.ID, "name", created.Name)
}
