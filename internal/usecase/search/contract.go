package search

import (
	"context"

	domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"
)

// CatalogReader provides the current catalog snapshot.
type CatalogReader interface {
	Snapshot() (*domcat.Catalog, error)
}

// HistoryRecorder stores executed queries and serves them back for suggestions.
type HistoryRecorder interface {
	Add(ctx context.Context, query string) bool
	List(ctx context.Context) []string
	Matching(ctx context.Context, term string) []string
}

// Scorer computes string similarities. PartialRatio may be memoized.
type Scorer interface {
	Similarity(a, b string) float64
	PartialRatio(needle, haystack string) float64
}
