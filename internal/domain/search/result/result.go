package result

import "github.com/kailas-cloud/sigimsae/internal/domain/record"

// Result is a record annotated with its relevance score.
// Pass-through results (empty query, non-fuzzy modes) are unscored.
type Result struct {
	record record.Record
	score  float64
	scored bool
}

// New creates a scored result.
func New(r record.Record, score float64) Result {
	return Result{record: r, score: score, scored: true}
}

// Unscored wraps a record without a relevance score.
func Unscored(r record.Record) Result {
	return Result{record: r}
}

// Record returns the matched record.
func (r *Result) Record() record.Record { return r.record }

// Score returns the relevance score (0 when unscored).
func (r *Result) Score() float64 { return r.score }

// Scored reports whether a relevance score was computed.
func (r *Result) Scored() bool { return r.scored }

// Records unwraps results back to records, keeping order.
func Records(results []Result) []record.Record {
	out := make([]record.Record, len(results))
	for i := range results {
		out[i] = results[i].record
	}
	return out
}
