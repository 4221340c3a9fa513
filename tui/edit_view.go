package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/dealgrid/pipeline"
)

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	d, ok := m.grid.CursorDeal()
	if !ok {
		m.status = "No deal to edit"
		return m, nil
	}
	col, ok := m.focusedColumn()
	if !ok {
		return m, nil
	}
	return m.openEditor(d.ID, col.Key, col.Text(d))
}

func (m Model) openEditor(id, field, value string) (tea.Model, tea.Cmd) {
	m.viewMode = ViewEdit
	m.editID = id
	m.editField = field
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) renderInput() string {
	label := "Filter query"
	if m.viewMode == ViewEdit {
		label = "Edit " + m.editField
		if def, ok := m.grid.Registry().Lookup(m.editField); ok {
			label = "Edit " + def.Label
		}
	}
	return panelStyle.Render(label + "\n" + m.input.View() + "\n" +
		helpStyle.Render("enter: Save • esc: Cancel"))
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.viewMode = ViewList
		return m, nil
	case "enter":
		m.input.Blur()
		if m.viewMode == ViewWhere {
			c, err := pipeline.ParseQuery(m.input.Value())
			if err != nil {
				m.status = fmt.Sprintf("Invalid filter: %v", err)
			} else {
				m.grid.SetFilters(c)
				m.search.SetValue(c.Search)
				m.status = fmt.Sprintf("%d filter(s) active", pipeline.ActiveFilterCount(c))
			}
		} else {
			m.status = m.applyEdit()
		}
		m.viewMode = ViewList
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) applyEdit() string {
	if _, err := m.grid.EditField(m.editID, m.editField, m.input.Value()); err != nil {
		return fmt.Sprintf("Edit rejected: %v", err)
	}
	return "Saved " + m.editField
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.grid.SetSearch(m.search.Value())
		m.viewMode = ViewList
		return m, nil
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.grid.SetSearch("")
		m.viewMode = ViewList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.grid.PreviewSearch(m.search.Value())
	return m, cmd
}
