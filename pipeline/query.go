// ABOUTME: Decodes filter criteria from query-string form
// ABOUTME: Used by the CLI --where flag and the MCP list tool
package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/harperreed/dealgrid/models"
)

type criteriaQuery struct {
	Stages     []string `schema:"stage"`
	Priorities []string `schema:"priority"`
	Owners     []string `schema:"owner"`
	Sources    []string `schema:"source"`
	Min        int64    `schema:"min"`
	Max        int64    `schema:"max"`
	Search     string   `schema:"q"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | int64](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ParseQuery decodes criteria from a raw query string such as
// "stage=Won,Lost&min=50000&q=cloud".
func ParseQuery(raw string) (Criteria, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return DefaultCriteria(), fmt.Errorf("parse filter query: %w", err)
	}
	return ParseCriteria(values)
}

// ParseCriteria decodes criteria from url values. Repeated keys and comma lists are
// both accepted; stage and priority names are case-insensitive.
func ParseCriteria(values url.Values) (Criteria, error) {
	q := criteriaQuery{Min: DefaultAmountMin, Max: DefaultAmountMax}
	if err := decoder.Decode(&q, values); err != nil {
		return DefaultCriteria(), fmt.Errorf("decode filter query: %w", err)
	}

	c := DefaultCriteria()
	for _, s := range splitList(q.Stages) {
		stage, err := models.ParseStage(s)
		if err != nil {
			return DefaultCriteria(), err
		}
		c.Stages = appendUnique(c.Stages, stage)
	}
	for _, p := range splitList(q.Priorities) {
		priority, err := models.ParsePriority(p)
		if err != nil {
			return DefaultCriteria(), err
		}
		c.Priorities = appendUnique(c.Priorities, priority)
	}
	for _, o := range splitList(q.Owners) {
		c.Owners = appendUnique(c.Owners, o)
	}
	for _, s := range splitList(q.Sources) {
		c.Sources = appendUnique(c.Sources, s)
	}
	c.Search = strings.TrimSpace(q.Search)
	c.Amount = SanitizeAmount(AmountRange{Min: q.Min, Max: q.Max})
	return c, nil
}

// SanitizeAmount clamps negative bounds to zero and swaps an inverted range.
func SanitizeAmount(r AmountRange) AmountRange {
	const ceiling = int64(1) << 40
	r.Min = clamp(r.Min, 0, ceiling)
	r.Max = clamp(r.Max, 0, ceiling)
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

// Encode renders criteria back into query-string form, omitting defaults.
func (c Criteria) Encode() string {
	v := url.Values{}
	for _, s := range c.Stages {
		v.Add("stage", string(s))
	}
	for _, p := range c.Priorities {
		v.Add("priority", string(p))
	}
	for _, o := range c.Owners {
		v.Add("owner", o)
	}
	for _, s := range c.Sources {
		v.Add("source", s)
	}
	if c.Amount.Min != DefaultAmountMin {
		v.Set("min", fmt.Sprint(c.Amount.Min))
	}
	if c.Amount.Max != DefaultAmountMax {
		v.Set("max", fmt.Sprint(c.Amount.Max))
	}
	if c.Search != "" {
		v.Set("q", c.Search)
	}
	return v.Encode()
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func appendUnique[T comparable](list []T, v T) []T {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
