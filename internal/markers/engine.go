// Package markers implements the marker list engine: a pure filter-and-sort
// over a project's marker collection. It is recomputed on every input change
// and never mutates the underlying collection; filter and sort state belong to
// the viewing session, not to storage.
package markers

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cuemark/internal/models"
)

// FilterAll is the wildcard value for either filter dimension.
const FilterAll = "all"

// Filter narrows the visible markers. Both predicates apply (AND).
type Filter struct {
	Type   string // category name or FilterAll
	Status string // status display string or FilterAll
}

// SortKey selects the marker field the list is ordered by.
type SortKey string

const (
	SortTimestamp SortKey = "timestamp"
	SortContext   SortKey = "context"
	SortType      SortKey = "type"
	SortStatus    SortKey = "status"
)

// SortKeys returns the keys in cycle order for the UI.
func SortKeys() []SortKey {
	return []SortKey{SortTimestamp, SortContext, SortType, SortStatus}
}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

type Sort struct {
	Key SortKey
	Dir Direction
}

// DefaultFilter shows everything.
func DefaultFilter() Filter {
	return Filter{Type: FilterAll, Status: FilterAll}
}

// DefaultSort orders by timestamp ascending.
func DefaultSort() Sort {
	return Sort{Key: SortTimestamp, Dir: Ascending}
}

// collator compares string fields collation-aware rather than bytewise.
var collator = collate.New(language.Und)

func (f Filter) matches(m models.Marker) bool {
	if f.Type != "" && f.Type != FilterAll && m.Type != f.Type {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && string(m.Status) != f.Status {
		return false
	}
	return true
}

func compare(a, b models.Marker, key SortKey) int {
	switch key {
	case SortContext:
		return collator.CompareString(a.Context, b.Context)
	case SortType:
		return collator.CompareString(a.Type, b.Type)
	case SortStatus:
		return collator.CompareString(string(a.Status), string(b.Status))
	default: // SortTimestamp
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		default:
			return 0
		}
	}
}

// Apply produces the display list for the given filter and sort. The input
// slice is left untouched; the sort is stable, so equal elements keep the
// collection order regardless of direction.
func Apply(in []models.Marker, f Filter, s Sort) []models.Marker {
	out := make([]models.Marker, 0, len(in))
	for _, m := range in {
		if f.matches(m) {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], s.Key)
		if s.Dir == Descending {
			return c > 0
		}
		return c < 0
	})

	return out
}

// SortByTimestamp is the canonical order imports are normalized to.
func SortByTimestamp(in []models.Marker) []models.Marker {
	return Apply(in, DefaultFilter(), DefaultSort())
}
