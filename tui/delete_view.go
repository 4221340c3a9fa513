// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Confirms deletion of the selected deals, or the deal under the cursor
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	ids := m.grid.SelectedIDs()
	if len(ids) == 0 {
		d, ok := m.grid.CursorDeal()
		if !ok {
			m.status = "No deal to delete"
			return m, nil
		}
		ids = []string{d.ID}
	}
	m.pendingDelete = ids
	m.viewMode = ViewConfirmDelete
	return m, nil
}

func (m Model) renderConfirmDeleteView() string {
	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")

	message := fmt.Sprintf("Are you sure you want to delete %d deals?", len(m.pendingDelete))
	info := ""
	if len(m.pendingDelete) == 1 {
		message = "Are you sure you want to delete this deal?"
		if d, err := m.grid.Get(m.pendingDelete[0]); err == nil {
			info = fmt.Sprintf("\nDEAL: %s\n", d.Name)
		}
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		info,
		"\nThis action cannot be undone!",
		"",
		buttons,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		confirmBoxStyle.Render(content),
	)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		removed := m.grid.DeleteIDs(m.pendingDelete...)
		m.status = fmt.Sprintf("Deleted %d deal(s)", len(removed))
		m.pendingDelete = nil
		m.viewMode = ViewList
	case "n", "N", "esc":
		m.pendingDelete = nil
		m.viewMode = ViewList
	}

	return m, nil
}
