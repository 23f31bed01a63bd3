package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/sigimsae/internal/domain/record"
)

// MaxValuesPerGroup is the maximum number of values per filter group.
const MaxValuesPerGroup = 32

// Ornament type names.
const (
	TypeFront = "앞꾸밈음"
	TypeBack  = "뒷꾸밈음"
)

// Filter narrows the catalog before matching. Empty groups do not constrain.
type Filter struct {
	instruments []string
	categories  []string
	types       []string
}

// New validates and creates a Filter. Blank values are dropped.
func New(instruments, categories, types []string) (Filter, error) {
	f := Filter{
		instruments: compact(instruments),
		categories:  compact(categories),
		types:       compact(types),
	}
	if len(f.instruments) > MaxValuesPerGroup {
		return Filter{}, fmt.Errorf("too many instrument filters (max %d)", MaxValuesPerGroup)
	}
	if len(f.categories) > MaxValuesPerGroup {
		return Filter{}, fmt.Errorf("too many category filters (max %d)", MaxValuesPerGroup)
	}
	if len(f.types) > MaxValuesPerGroup {
		return Filter{}, fmt.Errorf("too many type filters (max %d)", MaxValuesPerGroup)
	}
	return f, nil
}

// Instruments returns the instrument names to keep.
func (f Filter) Instruments() []string { return f.instruments }

// Categories returns the category names to keep.
func (f Filter) Categories() []string { return f.categories }

// Types returns the ornament types to keep.
func (f Filter) Types() []string { return f.types }

// IsEmpty reports whether the filter has no constraints.
func (f Filter) IsEmpty() bool {
	return len(f.instruments) == 0 && len(f.categories) == 0 && len(f.types) == 0
}

// Matches reports whether r passes every non-empty group.
func (f Filter) Matches(r *record.Record) bool {
	if len(f.instruments) > 0 && !slices.Contains(f.instruments, r.InstrumentName()) {
		return false
	}
	if len(f.categories) > 0 && !slices.Contains(f.categories, r.CategoryName()) {
		return false
	}
	if len(f.types) > 0 && !f.matchesType(r) {
		return false
	}
	return true
}

// Apply returns the records that match, preserving order.
func (f Filter) Apply(records []record.Record) []record.Record {
	if f.IsEmpty() {
		return records
	}
	out := make([]record.Record, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// matchesType classifies by marker syllables in name or description.
// Unknown type names always match.
func (f Filter) matchesType(r *record.Record) bool {
	front := strings.Contains(r.Name(), "앞") || strings.Contains(r.Description(), "앞꾸밈")
	back := strings.Contains(r.Name(), "뒷") || strings.Contains(r.Description(), "뒷꾸밈")
	for _, t := range f.types {
		switch t {
		case TypeFront:
			if front {
				return true
			}
		case TypeBack:
			if back {
				return true
			}
		default:
			return true
		}
	}
	return false
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
