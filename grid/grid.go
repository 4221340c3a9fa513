// ABOUTME: View coordinator for the deals grid
// ABOUTME: Owns the serializable view state and recomputes filter, sort and totals on every change
package grid

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/export"
	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/pipeline"
	"github.com/harperreed/dealgrid/prefs"
	"github.com/harperreed/dealgrid/selection"
	"github.com/harperreed/dealgrid/store"
)

// Panel identifies a toggleable side panel.
type Panel int

const (
	FilterPanel Panel = iota
	ColumnPanel
)

// State is the view configuration owned by a Grid.
type State struct {
	Filters         pipeline.Criteria      `json:"filters"`
	HeaderFilters   pipeline.HeaderFilters `json:"header_filters"`
	SortKeys        []pipeline.SortKey     `json:"sort_configs"`
	Columns         columns.Layout         `json:"columns"`
	ShowFilters     bool                   `json:"show_filters"`
	ShowColumnPanel bool                   `json:"show_column_panel"`
	Expanded        []string               `json:"expanded"`
	Cursor          int                    `json:"cursor"`
}

func (s State) clone() State {
	out := s
	out.Filters = s.Filters.Clone()
	out.HeaderFilters = make(pipeline.HeaderFilters, len(s.HeaderFilters))
	for k, v := range s.HeaderFilters {
		out.HeaderFilters[k] = v
	}
	out.SortKeys = slices.Clone(s.SortKeys)
	out.Columns = s.Columns.Clone()
	out.Expanded = slices.Clone(s.Expanded)
	return out
}

// Grid is not safe for concurrent use.
type Grid struct {
	store    *store.Store
	reg      *columns.Registry
	sel      *selection.State
	state    State
	view     []models.Deal
	totals   pipeline.Totals
	unique   pipeline.UniqueValues
	onChange func(prefs.Preferences)
}

// New builds a grid over s starting from saved preferences p.
func New(s *store.Store, reg *columns.Registry, p prefs.Preferences) *Grid {
	g := &Grid{
		store: s,
		reg:   reg,
		sel:   selection.New(),
	}
	g.applyPreferences(p)
	g.recompute()
	return g
}

// OnChange registers a hook called with the current preferences after any change
// to filters, sort, columns or panels.
func (g *Grid) OnChange(fn func(prefs.Preferences)) {
	g.onChange = fn
}

func (g *Grid) Registry() *columns.Registry { return g.reg }

// View returns the filtered, sorted deals. Callers must not modify it.
func (g *Grid) View() []models.Deal { return g.view }

func (g *Grid) Totals() pipeline.Totals { return g.totals }

// Unique lists filterable values across all stored deals.
func (g *Grid) Unique() pipeline.UniqueValues { return g.unique }

// State returns a copy of the view state.
func (g *Grid) State() State { return g.state.clone() }

// Len is the number of stored deals, filtered or not.
func (g *Grid) Len() int { return g.store.Len() }

func (g *Grid) Get(id string) (models.Deal, error) { return g.store.Get(id) }

// recompute reruns filter, sort and aggregate, then repairs the anchor and cursor.
func (g *Grid) recompute() {
	all := g.store.All()
	filtered := pipeline.Filter(all, g.state.Filters, g.state.HeaderFilters, g.reg)
	g.view = pipeline.Sort(filtered, g.state.SortKeys)
	g.totals = pipeline.Aggregate(g.view)
	g.unique = pipeline.Unique(all)
	g.sel.Reanchor(g.view)
	g.clampCursor()
	log.Debug("recomputed view", "deals", len(all), "visible", len(g.view))
}

func (g *Grid) clampCursor() {
	switch {
	case len(g.view) == 0:
		g.state.Cursor = 0
	case g.state.Cursor >= len(g.view):
		g.state.Cursor = len(g.view) - 1
	case g.state.Cursor < 0:
		g.state.Cursor = 0
	}
}

func (g *Grid) changed() {
	if g.onChange != nil {
		g.onChange(g.Preferences())
	}
}

// Filters

func (g *Grid) SetFilters(c pipeline.Criteria) {
	c.Amount = pipeline.SanitizeAmount(c.Amount)
	g.state.Filters = c.Clone()
	g.recompute()
	g.changed()
}

func (g *Grid) SetSearch(term string) {
	g.PreviewSearch(term)
	g.changed()
}

// PreviewSearch narrows the view like SetSearch without notifying the change hook,
// for live typing that has not been committed yet.
func (g *Grid) PreviewSearch(term string) {
	g.state.Filters.Search = term
	g.recompute()
}

// SetHeaderFilter sets the substring filter for a column; an empty value clears it.
func (g *Grid) SetHeaderFilter(key, value string) error {
	if _, ok := g.reg.Lookup(key); !ok {
		return fmt.Errorf("unknown column %q", key)
	}
	if value == "" {
		delete(g.state.HeaderFilters, key)
	} else {
		g.state.HeaderFilters[key] = value
	}
	g.recompute()
	g.changed()
	return nil
}

// ClearFilters resets the filter panel and every header filter.
func (g *Grid) ClearFilters() {
	g.state.Filters = pipeline.DefaultCriteria()
	g.state.HeaderFilters = pipeline.HeaderFilters{}
	g.recompute()
	g.changed()
}

// Sorting

// ClickSort applies a header click; appendKey adds a new key instead of replacing.
func (g *Grid) ClickSort(key string, appendKey bool) error {
	if !pipeline.IsSortable(key) {
		return fmt.Errorf("%w: %q", pipeline.ErrInvalidSort, key)
	}
	g.state.SortKeys = pipeline.ToggleSort(g.state.SortKeys, key, appendKey)
	g.recompute()
	g.changed()
	return nil
}

func (g *Grid) SetSortKeys(keys []pipeline.SortKey) {
	g.state.SortKeys = pipeline.SanitizeSortKeys(keys)
	g.recompute()
	g.changed()
}

// Selection

func (g *Grid) ClickRow(i int, mode selection.Mode) {
	g.sel.Click(g.view, i, mode)
	if i >= 0 && i < len(g.view) {
		g.state.Cursor = i
	}
}

func (g *Grid) SelectAll() { g.sel.SelectAll(g.view) }
func (g *Grid) DeselectAll() { g.sel.DeselectAll() }

// SelectIDs replaces the selection with the given stored ids; unknown ids are skipped.
func (g *Grid) SelectIDs(ids []string) {
	var known []string
	for _, id := range ids {
		if _, err := g.store.Get(id); err == nil {
			known = append(known, id)
		}
	}
	g.sel.Set(known)
}

func (g *Grid) IsSelected(id string) bool { return g.sel.IsSelected(id) }
func (g *Grid) SelectedIDs() []string { return g.sel.IDs() }
func (g *Grid) SelectedCount() int { return g.sel.Len() }
func (g *Grid) AllSelected() bool { return g.sel.AllSelected(g.view) }
func (g *Grid) Indeterminate() bool { return g.sel.Indeterminate(g.view) }
func (g *Grid) Anchor() (int, bool) { return g.sel.Anchor() }
func (g *Grid) SelectedInView() []models.Deal { return g.sel.InView(g.view) }

// Cursor and expansion

func (g *Grid) Cursor() int { return g.state.Cursor }

func (g *Grid) SetCursor(i int) {
	g.state.Cursor = i
	g.clampCursor()
}

// CursorDeal returns the deal under the cursor.
func (g *Grid) CursorDeal() (models.Deal, bool) {
	if len(g.view) == 0 {
		return models.Deal{}, false
	}
	return g.view[g.state.Cursor], true
}

// ToggleExpanded flips the detail row for id and reports whether it is now open.
func (g *Grid) ToggleExpanded(id string) bool {
	if i := slices.Index(g.state.Expanded, id); i >= 0 {
		g.state.Expanded = slices.Delete(g.state.Expanded, i, i+1)
		return false
	}
	if _, err := g.store.Get(id); err != nil {
		return false
	}
	g.state.Expanded = append(g.state.Expanded, id)
	return true
}

func (g *Grid) IsExpanded(id string) bool {
	return slices.Contains(g.state.Expanded, id)
}

// Record mutations

// CreateDeal stores d with creation defaults for empty fields.
func (g *Grid) CreateDeal(d models.Deal) (models.Deal, error) {
	created, err := g.store.Create(d)
	if err != nil {
		return models.Deal{}, err
	}
	g.recompute()
	log.Info("created deal", "id", created.ID, "name", created.Name)
	return created, nil
}

// NewDeal returns a blank deal with creation defaults, not yet stored.
func (g *Grid) NewDeal() models.Deal {
	return g.store.NewDeal()
}

func (g *Grid) EditField(id, field, value string) (models.Deal, error) {
	d, err := g.store.Edit(id, field, value)
	if err != nil {
		return models.Deal{}, err
	}
	g.recompute()
	return d, nil
}

func (g *Grid) DuplicateDeal(id string) (models.Deal, error) {
	dup, err := g.store.Duplicate(id)
	if err != nil {
		return models.Deal{}, err
	}
	g.recompute()
	return dup, nil
}

// DuplicateSelected copies every selected deal, in view order for visible ones.
func (g *Grid) DuplicateSelected() ([]models.Deal, error) {
	var out []models.Deal
	for _, id := range g.selectedOrdered() {
		dup, err := g.store.Duplicate(id)
		if err != nil {
			g.recompute()
			return out, err
		}
		out = append(out, dup)
	}
	g.recompute()
	return out, nil
}

func (g *Grid) DeleteDeal(id string) error {
	if len(g.remove(id)) == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}

// DeleteSelected removes every selected deal and returns their ids.
func (g *Grid) DeleteSelected() []string {
	return g.remove(g.sel.IDs()...)
}

// DeleteIDs removes the given deals and returns the ids that existed.
func (g *Grid) DeleteIDs(ids ...string) []string {
	return g.remove(ids...)
}

func (g *Grid) remove(ids ...string) []string {
	removed := g.store.Delete(ids...)
	if len(removed) == 0 {
		return nil
	}
	g.sel.Remove(removed...)
	g.state.Expanded = slices.DeleteFunc(g.state.Expanded, func(id string) bool {
		return slices.Contains(removed, id)
	})
	g.recompute()
	log.Info("deleted deals", "count", len(removed))
	return removed
}

// BulkSetStage moves every selected deal to stage and returns how many changed.
func (g *Grid) BulkSetStage(stage models.Stage) (int, error) {
	if !stage.Valid() {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidStage, stage)
	}
	return g.bulkEdit("stage", string(stage))
}

func (g *Grid) BulkSetPriority(priority models.Priority) (int, error) {
	if !priority.Valid() {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidPriority, priority)
	}
	return g.bulkEdit("priority", string(priority))
}

func (g *Grid) bulkEdit(field, value string) (int, error) {
	n := 0
	for _, id := range g.sel.IDs() {
		if _, err := g.store.Edit(id, field, value); err != nil {
			g.recompute()
			return n, err
		}
		n++
	}
	g.recompute()
	return n, nil
}

// selectedOrdered lists selected ids in view order, then any selected ids that are
// filtered out of the view.
func (g *Grid) selectedOrdered() []string {
	var ids []string
	for _, d := range g.sel.InView(g.view) {
		ids = append(ids, d.ID)
	}
	for _, id := range g.sel.IDs() {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ExportSelected writes the selected visible deals as CSV in view order.
func (g *Grid) ExportSelected(w io.Writer) (int, error) {
	deals := g.sel.InView(g.view)
	if err := export.WriteCSV(w, deals); err != nil {
		return 0, err
	}
	return len(deals), nil
}

// Columns and panels

func (g *Grid) SetColumnVisible(key string, visible bool) {
	g.state.Columns = g.state.Columns.SetVisible(key, visible)
	g.changed()
}

func (g *Grid) MoveColumn(key string, delta int) {
	g.state.Columns = g.state.Columns.Move(key, delta)
	g.changed()
}

func (g *Grid) ResizeColumn(key string, width int) {
	g.state.Columns = g.reg.Resize(g.state.Columns, key, width)
	g.changed()
}

// VisibleColumns returns the shown column definitions with their current widths.
func (g *Grid) VisibleColumns() []Column {
	var out []Column
	for _, s := range g.state.Columns.Visible() {
		def, ok := g.reg.Lookup(s.Key)
		if !ok {
			continue
		}
		out = append(out, Column{Def: def, Width: s.Width})
	}
	return out
}

// Column is a visible column with its configured width.
type Column struct {
	columns.Def
	Width int
}

func (g *Grid) TogglePanel(p Panel) bool {
	switch p {
	case FilterPanel:
		g.state.ShowFilters = !g.state.ShowFilters
		g.changed()
		return g.state.ShowFilters
	case ColumnPanel:
		g.state.ShowColumnPanel = !g.state.ShowColumnPanel
		g.changed()
		return g.state.ShowColumnPanel
	}
	return false
}

// Preferences

// Preferences snapshots the persisted part of the state.
func (g *Grid) Preferences() prefs.Preferences {
	s := g.state.clone()
	return prefs.Preferences{
		SortKeys:        s.SortKeys,
		Filters:         s.Filters,
		Columns:         s.Columns,
		HeaderFilters:   s.HeaderFilters,
		ShowFilters:     s.ShowFilters,
		ShowColumnPanel: s.ShowColumnPanel,
	}
}

// ApplyPreferences replaces the persisted part of the state after sanitizing p.
func (g *Grid) ApplyPreferences(p prefs.Preferences) {
	g.applyPreferences(p)
	g.recompute()
	g.changed()
}

func (g *Grid) applyPreferences(p prefs.Preferences) {
	p = prefs.Sanitize(p, g.reg)
	g.state.Filters = p.Filters
	g.state.HeaderFilters = p.HeaderFilters
	g.state.SortKeys = p.SortKeys
	g.state.Columns = p.Columns
	g.state.ShowFilters = p.ShowFilters
	g.state.ShowColumnPanel = p.ShowColumnPanel
}
