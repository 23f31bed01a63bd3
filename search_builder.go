package sigimsae

import (
	"context"
	"fmt"
)

// QueryBuilder is a fluent builder for Engine.Search.
type QueryBuilder struct {
	engine *Engine
	query  string
	opts   SearchOptions
}

// Query starts a fluent search for q.
//
//	results, err := engine.Query("앞꾸밈").Instrument("장구").Limit(10).Do(ctx)
func (e *Engine) Query(q string) *QueryBuilder {
	return &QueryBuilder{engine: e, query: q}
}

// Mode sets the matching strategy.
func (b *QueryBuilder) Mode(m SearchMode) *QueryBuilder {
	b.opts.Mode = m
	return b
}

// Threshold overrides the length-based fuzzy threshold.
func (b *QueryBuilder) Threshold(t float64) *QueryBuilder {
	b.opts.Threshold = &t
	return b
}

// Instrument restricts results to the named instruments. Repeated calls widen the set.
func (b *QueryBuilder) Instrument(names ...string) *QueryBuilder {
	b.opts.Instruments = append(b.opts.Instruments, names...)
	return b
}

// Category restricts results to the named categories.
func (b *QueryBuilder) Category(names ...string) *QueryBuilder {
	b.opts.Categories = append(b.opts.Categories, names...)
	return b
}

// Type restricts results by ornament type (TypeFront, TypeBack).
func (b *QueryBuilder) Type(types ...string) *QueryBuilder {
	b.opts.Types = append(b.opts.Types, types...)
	return b
}

// CaseSensitive disables case folding in the substring and regex modes.
// Case-sensitive substring search looks at name and description only.
func (b *QueryBuilder) CaseSensitive() *QueryBuilder {
	b.opts.CaseSensitive = true
	return b
}

// Limit sets the maximum number of results.
func (b *QueryBuilder) Limit(n int) *QueryBuilder {
	b.opts.Limit = n
	return b
}

// Do executes the search.
func (b *QueryBuilder) Do(ctx context.Context) ([]SearchResult, error) {
	opts := b.opts
	results, err := b.engine.Search(ctx, b.query, &opts)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", b.query, err)
	}
	return results, nil
}
