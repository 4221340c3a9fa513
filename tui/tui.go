// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive deals grid with selection, sorting, filtering and bulk actions
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/dealgrid/grid"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewSearch
	ViewEdit
	ViewWhere
	ViewConfirmDelete
)

// Model is the main bubbletea model
type Model struct {
	grid     *grid.Grid
	viewMode ViewMode

	// Index into the visible columns
	focusCol int

	search textinput.Model

	// Edit and filter-query input
	input     textinput.Model
	editID    string
	editField string

	// Ids queued for deletion while confirming
	pendingDelete []string

	exportDir string
	now       func() time.Time

	status string
	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithExportDir sets where exported CSV files are written.
func WithExportDir(dir string) Option {
	return func(m *Model) { m.exportDir = dir }
}

// WithClock overrides the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel creates a new TUI model
func NewModel(g *grid.Grid, opts ...Option) Model {
	search := textinput.New()
	search.Placeholder = "Search deals..."
	search.Prompt = "/ "

	input := textinput.New()
	input.Prompt = "> "

	m := Model{
		grid:      g,
		viewMode:  ViewList,
		search:    search,
		input:     input,
		exportDir: ".",
		now:       time.Now,
		width:     120,
		height:    30,
	}
	m.search.SetValue(g.State().Filters.Search)
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	default:
		return m.renderListView()
	}
}

// Status is the last action message shown under the grid.
func (m Model) Status() string {
	return m.status
}

func (m Model) Mode() ViewMode {
	return m.viewMode
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewSearch:
		return m.handleSearchKeys(msg)
	case ViewEdit, ViewWhere:
		return m.handleInputKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	totalsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
