// ABOUTME: Column registry mapping grid column keys to labels, formatters and filter text
// ABOUTME: Also holds the per-column layout (order, visibility, width) with its edit operations
package columns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/dealgrid/models"
)

// Def describes one grid column. Widths are in terminal cells.
type Def struct {
	Key          string
	Label        string
	DefaultWidth int
	MinWidth     int
	// Format renders the cell.
	Format func(models.Deal) string
	// Text is the string a header filter matches against.
	Text func(models.Deal) string
}

type Registry struct {
	defs  []Def
	byKey map[string]int
}

// NewRegistry builds a registry; the order of defs is the default column order.
func NewRegistry(defs ...Def) *Registry {
	r := &Registry{byKey: make(map[string]int, len(defs))}
	for _, d := range defs {
		if d.Text == nil {
			d.Text = d.Format
		}
		if d.MinWidth > d.DefaultWidth {
			d.DefaultWidth = d.MinWidth
		}
		r.byKey[d.Key] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r
}

var defaultRegistry = NewRegistry(
	Def{Key: "name", Label: "Deal Name", DefaultWidth: 28, MinWidth: 20,
		Format: func(d models.Deal) string { return d.Name }},
	Def{Key: "stage", Label: "Stage", DefaultWidth: 16, MinWidth: 14,
		Format: func(d models.Deal) string { return string(d.Stage) }},
	Def{Key: "owner", Label: "Owner", DefaultWidth: 18, MinWidth: 16,
		Format: func(d models.Deal) string { return d.Owner.Name }},
	Def{Key: "company", Label: "Company", DefaultWidth: 20, MinWidth: 18,
		Format: func(d models.Deal) string { return d.Company }},
	Def{Key: "amount", Label: "Amount", DefaultWidth: 14, MinWidth: 12,
		Format: func(d models.Deal) string { return d.Amount.String() }},
	Def{Key: "probability", Label: "Probability", DefaultWidth: 16, MinWidth: 14,
		Format: func(d models.Deal) string { return fmt.Sprintf("%d%%", d.Probability) },
		Text:   func(d models.Deal) string { return strconv.Itoa(d.Probability) }},
	Def{Key: "closeDate", Label: "Close Date", DefaultWidth: 14, MinWidth: 12,
		Format: func(d models.Deal) string { return d.CloseDate }},
	Def{Key: "priority", Label: "Priority", DefaultWidth: 13, MinWidth: 11,
		Format: func(d models.Deal) string { return string(d.Priority) }},
	Def{Key: "source", Label: "Source", DefaultWidth: 12, MinWidth: 10,
		Format: func(d models.Deal) string { return d.Source }},
	Def{Key: "tags", Label: "Tags", DefaultWidth: 16, MinWidth: 14,
		Format: func(d models.Deal) string { return strings.Join(d.Tags, ", ") }},
)

// Default returns the registry of built-in deal columns.
func Default() *Registry {
	return defaultRegistry
}

func (r *Registry) Lookup(key string) (Def, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Def{}, false
	}
	return r.defs[i], true
}

// Keys returns every column key in default order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.defs))
	for i, d := range r.defs {
		keys[i] = d.Key
	}
	return keys
}

// Setting is the persisted layout of a single column.
type Setting struct {
	Key     string `json:"key"`
	Visible bool   `json:"visible"`
	Width   int    `json:"width"`
}

// Layout is the ordered column configuration; slice order is display order.
type Layout []Setting

// DefaultLayout shows every column at its default width.
func (r *Registry) DefaultLayout() Layout {
	out := make(Layout, len(r.defs))
	for i, d := range r.defs {
		out[i] = Setting{Key: d.Key, Visible: true, Width: d.DefaultWidth}
	}
	return out
}

// Sanitize drops unknown and repeated keys, appends missing columns with defaults
// and clamps widths to each column's minimum.
func (r *Registry) Sanitize(l Layout) Layout {
	seen := make(map[string]bool, len(r.defs))
	out := make(Layout, 0, len(r.defs))
	for _, s := range l {
		def, ok := r.Lookup(s.Key)
		if !ok || seen[s.Key] {
			continue
		}
		seen[s.Key] = true
		if s.Width < def.MinWidth {
			s.Width = def.MinWidth
		}
		out = append(out, s)
	}
	for _, d := range r.defs {
		if !seen[d.Key] {
			out = append(out, Setting{Key: d.Key, Visible: true, Width: d.DefaultWidth})
		}
	}
	return out
}

// Resize sets a column width, never below its minimum.
func (r *Registry) Resize(l Layout, key string, width int) Layout {
	def, ok := r.Lookup(key)
	if !ok {
		return l.Clone()
	}
	if width < def.MinWidth {
		width = def.MinWidth
	}
	out := l.Clone()
	if i := out.Index(key); i >= 0 {
		out[i].Width = width
	}
	return out
}

func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	return append(Layout(nil), l...)
}

// Index returns the position of key, or -1.
func (l Layout) Index(key string) int {
	for i, s := range l {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// Visible returns the shown columns in display order.
func (l Layout) Visible() Layout {
	var out Layout
	for _, s := range l {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

// SetVisible shows or hides a column. The last visible column cannot be hidden.
func (l Layout) SetVisible(key string, visible bool) Layout {
	out := l.Clone()
	i := out.Index(key)
	if i < 0 {
		return out
	}
	if !visible && out[i].Visible && len(out.Visible()) == 1 {
		return out
	}
	out[i].Visible = visible
	return out
}

// Move shifts a column by delta positions, clamped to the ends.
func (l Layout) Move(key string, delta int) Layout {
	out := l.Clone()
	from := out.Index(key)
	if from < 0 {
		return out
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(out)-1 {
		to = len(out) - 1
	}
	if to == from {
		return out
	}
	s := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(Layout{s}, out[to:]...)...)
	return out
}
