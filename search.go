package sigimsae

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/sigimsae/internal/domain/record"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/filter"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/mode"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/request"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/result"
)

// Search filters the catalog, matches the query in the requested mode and
// records non-blank queries in the search history.
func (e *Engine) Search(ctx context.Context, query string, opts *SearchOptions) (_ []SearchResult, err error) {
	start := time.Now()
	defer func() { e.obs.observe("search", start, err) }()

	if opts == nil {
		opts = &SearchOptions{}
	}

	f, err := filter.New(opts.Instruments, opts.Categories, opts.Types)
	if err != nil {
		return nil, fmt.Errorf("search: %w: %w", ErrInvalidRequest, err)
	}
	req, err := request.New(query, mode.Mode(opts.Mode), f, opts.Threshold, opts.CaseSensitive, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w: %w", ErrInvalidRequest, err)
	}

	results, err := e.search.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResults(results), nil
}

// Fuzzy ranks records against query without touching the catalog or history.
// threshold nil selects the length-based default.
func (e *Engine) Fuzzy(
	ctx context.Context, query string, records []Record, threshold *float64,
) (_ []SearchResult, err error) {
	start := time.Now()
	defer func() { e.obs.observe("fuzzy", start, err) }()

	results, err := e.search.Fuzzy(ctx, query, toInternalRecords(records), threshold)
	if err != nil {
		return nil, fmt.Errorf("fuzzy: %w", err)
	}
	return fromResults(results), nil
}

// Suggestions returns up to limit completions: matching history entries first,
// then record names. limit <= 0 uses the default of 5.
func (e *Engine) Suggestions(ctx context.Context, query string, limit int) (_ []string, err error) {
	start := time.Now()
	defer func() { e.obs.observe("suggestions", start, err) }()

	out, err := e.search.Suggestions(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	return out, nil
}

// AddToSearchHistory records query as the most recent search.
// Returns false for blank queries.
func (e *Engine) AddToSearchHistory(ctx context.Context, query string) bool {
	return e.history.Add(ctx, query)
}

// SearchHistory returns recent queries, newest first.
func (e *Engine) SearchHistory(ctx context.Context) []string {
	return e.history.List(ctx)
}

// ClearSearchHistory removes all remembered queries.
func (e *Engine) ClearSearchHistory(ctx context.Context) {
	e.history.Clear(ctx)
}

// Record returns a catalog record by ID.
func (e *Engine) Record(id string) (Record, error) {
	r, err := e.catalog.Get(id)
	if err != nil {
		return Record{}, fmt.Errorf("record %q: %w", id, err)
	}
	return fromRecord(&r), nil
}

// Records returns the whole catalog in file order.
func (e *Engine) Records() ([]Record, error) {
	rs, err := e.catalog.All()
	if err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}
	out := make([]Record, len(rs))
	for i := range rs {
		out[i] = fromRecord(&rs[i])
	}
	return out, nil
}

func toInternalRecords(records []Record) []record.Record {
	out := make([]record.Record, len(records))
	for i := range records {
		r := &records[i]
		out[i] = record.Reconstruct(r.ID, r.Name, r.Description, r.InstrumentName, r.CategoryName, record.Meta{
			InstrumentID:    r.InstrumentID,
			CategoryID:      r.CategoryID,
			Filename:        r.Filename,
			ImagePath:       r.ImagePath,
			AutoAlign:       r.AutoAlign,
			RightColumnOnly: r.RightColumnOnly,
		})
	}
	return out
}

func fromRecord(r *record.Record) Record {
	m := r.Meta()
	return Record{
		ID:              r.ID(),
		Name:            r.Name(),
		Description:     r.Description(),
		InstrumentName:  r.InstrumentName(),
		CategoryName:    r.CategoryName(),
		InstrumentID:    m.InstrumentID,
		CategoryID:      m.CategoryID,
		Filename:        m.Filename,
		ImagePath:       m.ImagePath,
		AutoAlign:       m.AutoAlign,
		RightColumnOnly: m.RightColumnOnly,
	}
}

func fromResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		rec := r.Record()
		out[i] = SearchResult{Record: fromRecord(&rec)}
		if r.Scored() {
			score := r.Score()
			out[i].Score = &score
		}
	}
	return out
}
