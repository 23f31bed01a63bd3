package request

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/sigimsae/internal/domain/search/filter"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength = 256
	MaxLimit       = 500
)

// Request is a validated search query.
// An empty query is allowed and means "no ranking": the filtered catalog comes back as is.
type Request struct {
	query         string
	searchMode    mode.Mode
	filter        filter.Filter
	threshold     *float64
	caseSensitive bool
	limit         int
}

// New validates and normalizes search parameters.
// Defaults: mode=fuzzy, limit=0 (unlimited). threshold nil selects the length-based default.
func New(
	query string,
	m mode.Mode,
	f filter.Filter,
	threshold *float64,
	caseSensitive bool,
	limit int,
) (Request, error) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if m == "" {
		m = mode.Fuzzy
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search mode: %q", m)
	}
	if threshold != nil && (*threshold < 0 || *threshold > 1) {
		return Request{}, fmt.Errorf("threshold must be between 0 and 1")
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("limit must not be negative")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var th *float64
	if threshold != nil {
		v := *threshold
		th = &v
	}

	return Request{
		query:         query,
		searchMode:    m,
		filter:        f,
		threshold:     th,
		caseSensitive: caseSensitive,
		limit:         limit,
	}, nil
}

// Query returns the raw search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the matching strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Filter returns the catalog pre-filter.
func (r *Request) Filter() filter.Filter { return r.filter }

// Threshold returns the explicit score threshold, or nil for the default table.
func (r *Request) Threshold() *float64 { return r.threshold }

// CaseSensitive reports whether exact/substring/regex matching keeps case.
func (r *Request) CaseSensitive() bool { return r.caseSensitive }

// Limit returns the maximum results to return (0 = unlimited).
func (r *Request) Limit() int { return r.limit }
