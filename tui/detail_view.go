package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/dealgrid/models"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(16)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// renderDealDetail is the expanded row: description, contact, activities and files.
func renderDealDetail(d models.Deal) string {
	var s strings.Builder

	s.WriteString(renderField("Deal", d.Name))
	if d.Description != "" {
		s.WriteString(renderField("Description", d.Description))
	}
	if d.Contact != nil {
		contact := d.Contact.Name
		if d.Contact.Email != "" {
			contact += " <" + d.Contact.Email + ">"
		}
		if d.Contact.Phone != "" {
			contact += "  " + d.Contact.Phone
		}
		s.WriteString(renderField("Contact", contact))
	}
	if d.LastActivity != "" {
		s.WriteString(renderField("Last Activity", d.LastActivity))
	}

	if len(d.Activities) > 0 {
		s.WriteString("\nActivities:\n")
		for _, a := range d.Activities {
			s.WriteString(fmt.Sprintf("  • %s  %-8s %s\n", a.Date, a.Type, a.Description))
		}
	}

	if len(d.Files) > 0 {
		s.WriteString("\nFiles:\n")
		for _, f := range d.Files {
			s.WriteString(fmt.Sprintf("  📎 %s (%s)\n", f.Name, f.Size))
		}
	}

	return panelStyle.Render(strings.TrimRight(s.String(), "\n"))
}

func renderField(label, value string) string {
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}

func (m Model) renderFilterPanel() string {
	state := m.grid.State()
	c := state.Filters
	u := m.grid.Unique()

	var s strings.Builder
	s.WriteString(titleStyle.Render("FILTERS"))
	s.WriteString("\n")
	s.WriteString(checkList("Stage", models.Stages, c.Stages))
	s.WriteString(checkList("Priority", models.Priorities, c.Priorities))
	s.WriteString(checkList("Owner", u.Owners, c.Owners))
	s.WriteString(checkList("Source", u.Sources, c.Sources))
	s.WriteString(renderField("Amount", fmt.Sprintf("%s - %s",
		models.Dollars(c.Amount.Min), models.Dollars(c.Amount.Max))))
	if c.Search != "" {
		s.WriteString(renderField("Search", c.Search))
	}
	for key, value := range state.HeaderFilters {
		s.WriteString(renderField("Column "+key, value))
	}
	s.WriteString(helpStyle.Render("w: Edit filter query • x: Clear filters • f: Close"))

	return panelStyle.Render(s.String())
}

func checkList[T ~string](label string, options, chosen []T) string {
	var items []string
	for _, o := range options {
		mark := "☐"
		if slices.Contains(chosen, o) {
			mark = "☑"
		}
		items = append(items, mark+" "+string(o))
	}
	return renderField(label, strings.Join(items, "  "))
}

func (m Model) renderColumnPanel() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("COLUMNS"))
	s.WriteString("\n")

	reg := m.grid.Registry()
	for _, c := range m.grid.State().Columns {
		def, ok := reg.Lookup(c.Key)
		if !ok {
			continue
		}
		mark := "✗"
		if c.Visible {
			mark = "✓"
		}
		s.WriteString(fmt.Sprintf("  %s %-14s %3d\n", mark, def.Label, c.Width))
	}
	s.WriteString(helpStyle.Render("[/]: Move • -/+: Resize • v: Hide • V: Show all • c: Close"))

	return panelStyle.Render(s.String())
}
