// ABOUTME: Sort stage of the view pipeline
// ABOUTME: Stable multi-key ordering plus the header click cycle and CLI sort parsing
package pipeline

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/harperreed/dealgrid/models"
)

var ErrInvalidSort = errors.New("invalid sort key")

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type SortKey struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

func (k SortKey) String() string {
	return k.Key + ":" + string(k.Direction)
}

// SortableKeys lists the keys the comparator understands.
var SortableKeys = []string{
	"name", "company", "stage", "priority", "owner", "source", "description",
	"amount", "probability", "closeDate", "lastActivity", "tags",
}

func IsSortable(key string) bool {
	return slices.Contains(SortableKeys, key)
}

// Sort returns a stably ordered copy of deals. The first key is primary; a key
// whose value is undefined for either deal is skipped for that pair.
func Sort(deals []models.Deal, keys []SortKey) []models.Deal {
	out := slices.Clone(deals)
	if out == nil {
		out = []models.Deal{}
	}
	if len(keys) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b models.Deal) int {
		for _, k := range keys {
			c, ok := compareBy(k.Key, a, b)
			if !ok || c == 0 {
				continue
			}
			if k.Direction == Desc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}

func compareBy(key string, a, b models.Deal) (int, bool) {
	switch key {
	case "amount":
		return cmp.Compare(a.Amount, b.Amount), true
	case "probability":
		return cmp.Compare(a.Probability, b.Probability), true
	case "closeDate":
		return compareDates(a.CloseDate, b.CloseDate)
	case "lastActivity":
		return compareDates(a.LastActivity, b.LastActivity)
	case "owner":
		return compareFolded(a.Owner.Name, b.Owner.Name), true
	case "name":
		return compareFolded(a.Name, b.Name), true
	case "company":
		return compareFolded(a.Company, b.Company), true
	case "source":
		return compareFolded(a.Source, b.Source), true
	case "stage":
		return compareFolded(string(a.Stage), string(b.Stage)), true
	case "priority":
		return compareFolded(string(a.Priority), string(b.Priority)), true
	case "tags":
		return compareFolded(strings.Join(a.Tags, ","), strings.Join(b.Tags, ",")), true
	case "description":
		if a.Description == "" || b.Description == "" {
			return 0, false
		}
		return compareFolded(a.Description, b.Description), true
	}
	return 0, false
}

func compareFolded(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareDates(a, b string) (int, bool) {
	ta, err := models.ParseDate(a)
	if err != nil {
		return 0, false
	}
	tb, err := models.ParseDate(b)
	if err != nil {
		return 0, false
	}
	return ta.Compare(tb), true
}

// ToggleSort applies a header click. A key already sorted ascending flips to
// descending and a descending key is removed, leaving the others in place. A new key
// replaces the list, or is appended as the lowest priority when appendKey is set.
func ToggleSort(keys []SortKey, key string, appendKey bool) []SortKey {
	if i := slices.IndexFunc(keys, func(k SortKey) bool { return k.Key == key }); i >= 0 {
		out := slices.Clone(keys)
		if out[i].Direction == Asc {
			out[i].Direction = Desc
			return out
		}
		return slices.Delete(out, i, i+1)
	}

	next := SortKey{Key: key, Direction: Asc}
	if appendKey {
		return append(slices.Clone(keys), next)
	}
	return []SortKey{next}
}

// SortPriority returns the 1-based position of key in keys, or 0.
func SortPriority(keys []SortKey, key string) int {
	return slices.IndexFunc(keys, func(k SortKey) bool { return k.Key == key }) + 1
}

// SanitizeSortKeys drops unknown keys, bad directions and repeats.
func SanitizeSortKeys(keys []SortKey) []SortKey {
	out := []SortKey{}
	seen := map[string]bool{}
	for _, k := range keys {
		if !IsSortable(k.Key) || seen[k.Key] {
			continue
		}
		if k.Direction != Asc && k.Direction != Desc {
			continue
		}
		seen[k.Key] = true
		out = append(out, k)
	}
	return out
}

// ParseSortKeys parses "amount:desc,name" into sort keys; direction defaults to asc.
func ParseSortKeys(s string) ([]SortKey, error) {
	out := []SortKey{}
	seen := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, dir, _ := strings.Cut(part, ":")
		k := SortKey{Key: strings.TrimSpace(key), Direction: Asc}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			k.Direction = Desc
		default:
			return nil, fmt.Errorf("%w: direction %q", ErrInvalidSort, dir)
		}
		if !IsSortable(k.Key) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSort, k.Key)
		}
		if seen[k.Key] {
			continue
		}
		seen[k.Key] = true
		out = append(out, k)
	}
	return out, nil
}
