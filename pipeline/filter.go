// ABOUTME: Filter stage of the view pipeline
// ABOUTME: Applies search, multi-select criteria, amount range and per-column header filters
package pipeline

import (
	"slices"
	"strings"

	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/models"
)

// Amount range bounds used by the filter panel, in whole currency units.
const (
	DefaultAmountMin int64 = 0
	DefaultAmountMax int64 = 200000
)

type AmountRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Criteria are the filter panel settings. Empty sets do not constrain; values within
// a set are alternatives and separate sets must all match.
type Criteria struct {
	Stages     []models.Stage    `json:"stages"`
	Priorities []models.Priority `json:"priorities"`
	Owners     []string          `json:"owners"`
	Sources    []string          `json:"sources"`
	Amount     AmountRange       `json:"amount_range"`
	Search     string            `json:"search_term"`
}

// HeaderFilters maps a column key to a case-insensitive substring.
type HeaderFilters map[string]string

// DefaultCriteria matches every deal with a non-negative amount up to the default maximum.
func DefaultCriteria() Criteria {
	return Criteria{
		Stages:     []models.Stage{},
		Priorities: []models.Priority{},
		Owners:     []string{},
		Sources:    []string{},
		Amount:     AmountRange{Min: DefaultAmountMin, Max: DefaultAmountMax},
	}
}

func (c Criteria) Clone() Criteria {
	out := c
	out.Stages = slices.Clone(c.Stages)
	out.Priorities = slices.Clone(c.Priorities)
	out.Owners = slices.Clone(c.Owners)
	out.Sources = slices.Clone(c.Sources)
	return out
}

// IsUnconstrained reports whether c is equivalent to the default criteria.
func IsUnconstrained(c Criteria) bool {
	return len(c.Stages) == 0 &&
		len(c.Priorities) == 0 &&
		len(c.Owners) == 0 &&
		len(c.Sources) == 0 &&
		c.Search == "" &&
		c.Amount.Min <= DefaultAmountMin &&
		c.Amount.Max >= DefaultAmountMax
}

// ActiveFilterCount counts selected set values plus one for a search term.
func ActiveFilterCount(c Criteria) int {
	n := len(c.Stages) + len(c.Priorities) + len(c.Owners) + len(c.Sources)
	if c.Search != "" {
		n++
	}
	return n
}

// ActiveHeaderFilterCount counts header filters with a non-blank value.
func ActiveHeaderFilterCount(h HeaderFilters) int {
	n := 0
	for _, v := range h {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// Filter returns the deals matching c and every header filter, preserving input order.
// Header filters on keys missing from reg are ignored.
func Filter(deals []models.Deal, c Criteria, headers HeaderFilters, reg *columns.Registry) []models.Deal {
	search := strings.ToLower(c.Search)
	minCents := models.Dollars(c.Amount.Min)
	maxCents := models.Dollars(c.Amount.Max)

	type headerMatch struct {
		def    columns.Def
		needle string
	}
	var matches []headerMatch
	for key, value := range headers {
		needle := strings.ToLower(strings.TrimSpace(value))
		if needle == "" {
			continue
		}
		def, ok := reg.Lookup(key)
		if !ok {
			continue
		}
		matches = append(matches, headerMatch{def: def, needle: needle})
	}

	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if search != "" && !matchesSearch(d, search) {
			continue
		}
		if len(c.Stages) > 0 && !slices.Contains(c.Stages, d.Stage) {
			continue
		}
		if len(c.Priorities) > 0 && !slices.Contains(c.Priorities, d.Priority) {
			continue
		}
		if len(c.Owners) > 0 && !slices.Contains(c.Owners, d.Owner.Name) {
			continue
		}
		if len(c.Sources) > 0 && !slices.Contains(c.Sources, d.Source) {
			continue
		}
		if d.Amount < minCents || d.Amount > maxCents {
			continue
		}

		ok := true
		for _, m := range matches {
			if !strings.Contains(strings.ToLower(m.def.Text(d)), m.needle) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, d)
		}
	}
	return out
}

func matchesSearch(d models.Deal, term string) bool {
	if strings.Contains(strings.ToLower(d.Name), term) ||
		strings.Contains(strings.ToLower(d.Company), term) ||
		strings.Contains(strings.ToLower(d.Owner.Name), term) {
		return true
	}
	for _, tag := range d.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// UniqueValues lists the distinct filterable values in first-seen order.
type UniqueValues struct {
	Stages     []models.Stage    `json:"stages"`
	Priorities []models.Priority `json:"priorities"`
	Owners     []string          `json:"owners"`
	Sources    []string          `json:"sources"`
}

func Unique(deals []models.Deal) UniqueValues {
	var u UniqueValues
	for _, d := range deals {
		if !slices.Contains(u.Stages, d.Stage) {
			u.Stages = append(u.Stages, d.Stage)
		}
		if !slices.Contains(u.Priorities, d.Priority) {
			u.Priorities = append(u.Priorities, d.Priority)
		}
		if !slices.Contains(u.Owners, d.Owner.Name) {
			u.Owners = append(u.Owners, d.Owner.Name)
		}
		if !slices.Contains(u.Sources, d.Source) {
			u.Sources = append(u.Sources, d.Source)
		}
	}
	return u
}
