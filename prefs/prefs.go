// ABOUTME: Persisted grid preferences: sort, filters, column layout and panel flags
// ABOUTME: Decoding never fails; bad or partial blobs are repaired or replaced by defaults
package prefs

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/pipeline"
)

// Key is the fixed storage key of the preference blob.
const Key = "deals-table-preferences"

// Preferences is everything about the grid view that survives a restart.
type Preferences struct {
	SortKeys        []pipeline.SortKey     `json:"sort_configs"`
	Filters         pipeline.Criteria      `json:"filters"`
	Columns         columns.Layout         `json:"columns"`
	HeaderFilters   pipeline.HeaderFilters `json:"header_filters"`
	ShowFilters     bool                   `json:"show_filters"`
	ShowColumnPanel bool                   `json:"show_column_panel"`
}

// Defaults returns the preferences of a fresh grid.
func Defaults(reg *columns.Registry) Preferences {
	return Preferences{
		SortKeys:      []pipeline.SortKey{},
		Filters:       pipeline.DefaultCriteria(),
		Columns:       reg.DefaultLayout(),
		HeaderFilters: pipeline.HeaderFilters{},
	}
}

func Encode(p Preferences) ([]byte, error) {
	return json.Marshal(p)
}

// Decode parses a stored blob. ok is false when the blob was empty or malformed and
// defaults were returned instead.
func Decode(data []byte, reg *columns.Registry) (p Preferences, ok bool) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Defaults(reg), false
	}

	var raw Preferences
	if err := json.Unmarshal(data, &raw); err != nil {
		return Defaults(reg), false
	}

	// A blob without an amount range must not filter everything out.
	var presence struct {
		Filters struct {
			Amount *pipeline.AmountRange `json:"amount_range"`
		} `json:"filters"`
	}
	if err := json.Unmarshal(data, &presence); err != nil || presence.Filters.Amount == nil {
		raw.Filters.Amount = pipeline.DefaultCriteria().Amount
	}
	return Sanitize(raw, reg), true
}

// Sanitize repairs partially invalid preferences field by field.
func Sanitize(p Preferences, reg *columns.Registry) Preferences {
	out := Preferences{
		SortKeys:        pipeline.SanitizeSortKeys(p.SortKeys),
		Filters:         sanitizeCriteria(p.Filters),
		Columns:         reg.Sanitize(p.Columns),
		HeaderFilters:   pipeline.HeaderFilters{},
		ShowFilters:     p.ShowFilters,
		ShowColumnPanel: p.ShowColumnPanel,
	}
	for key, value := range p.HeaderFilters {
		if _, known := reg.Lookup(key); known && strings.TrimSpace(value) != "" {
			out.HeaderFilters[key] = value
		}
	}
	return out
}

func sanitizeCriteria(c pipeline.Criteria) pipeline.Criteria {
	out := pipeline.DefaultCriteria()
	for _, s := range c.Stages {
		if s.Valid() && !slices.Contains(out.Stages, s) {
			out.Stages = append(out.Stages, s)
		}
	}
	for _, p := range c.Priorities {
		if p.Valid() && !slices.Contains(out.Priorities, p) {
			out.Priorities = append(out.Priorities, p)
		}
	}
	out.Owners = compactStrings(c.Owners)
	out.Sources = compactStrings(c.Sources)
	out.Search = c.Search
	out.Amount = pipeline.SanitizeAmount(c.Amount)
	return out
}

func compactStrings(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
