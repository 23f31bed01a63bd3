package sigimsae

import (
	"github.com/kailas-cloud/sigimsae/internal/domain/search/filter"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/mode"
)

// SearchMode selects the matching strategy.
type SearchMode string

// Search modes.
const (
	ModeFuzzy     SearchMode = SearchMode(mode.Fuzzy)
	ModeSubstring SearchMode = SearchMode(mode.Substring)
	ModeExact     SearchMode = SearchMode(mode.Exact)
	ModeRegex     SearchMode = SearchMode(mode.Regex)
)

// Ornament type filter values.
const (
	TypeFront = filter.TypeFront
	TypeBack  = filter.TypeBack
)

// Record is a catalog entry. Only the four text fields take part in matching.
type Record struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	InstrumentName  string `json:"instrumentName"`
	CategoryName    string `json:"categoryName"`
	InstrumentID    string `json:"instrumentId,omitempty"`
	CategoryID      string `json:"categoryId,omitempty"`
	Filename        string `json:"filename,omitempty"`
	ImagePath       string `json:"imagePath,omitempty"`
	AutoAlign       bool   `json:"autoalign"`
	RightColumnOnly bool   `json:"rightColumnOnly"`
}

// SearchResult is a matched record. Score is nil when the record was not scored
// (blank query or a non-fuzzy mode).
type SearchResult struct {
	Record
	Score *float64 `json:"relevanceScore,omitempty"`
}

// SearchOptions configures Engine.Search. The zero value runs a fuzzy search
// with the length-based default threshold and no limit.
type SearchOptions struct {
	Mode          SearchMode
	Threshold     *float64
	Instruments   []string
	Categories    []string
	Types         []string
	CaseSensitive bool
	Limit         int
}
