package search

import (
	"context"
	"strings"
	"sync"
	"testing"

	domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"
	"github.com/kailas-cloud/sigimsae/internal/domain/record"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/result"
	"github.com/kailas-cloud/sigimsae/internal/domain/similarity"
	"github.com/kailas-cloud/sigimsae/internal/repository/scorecache"
)

// --- Mocks ---

type mockCatalog struct {
	cat *domcat.Catalog
	err error
}

func (m *mockCatalog) Snapshot() (*domcat.Catalog, error) { return m.cat, m.err }

type mockHistory struct {
	mu      sync.Mutex
	entries    []string
	matchCalls int
}

func (m *mockHistory) Add(_ context.Context, q string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]string{q}, m.entries...)
	return true
}

func (m *mockHistory) List(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.entries...)
}

func (m *mockHistory) Matching(_ context.Context, term string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchCalls++
	term = strings.ToLower(term)
	var out []string
	for _, e := range m.entries {
		if strings.Contains(strings.ToLower(e), term) {
			out = append(out, e)
		}
	}
	return out
}

// fixedScorer returns PartialRatio by haystack and 0 similarity.
type fixedScorer struct {
	partial map[string]float64
}

func (f *fixedScorer) Similarity(_, _ string) float64 { return 0 }

func (f *fixedScorer) PartialRatio(_, haystack string) float64 { return f.partial[haystack] }

// --- Fixtures ---

func testRecords() []record.Record {
	return []record.Record{
		record.Reconstruct("1", "앞꾸밈 덩", "덩 앞에 붙는 앞꾸밈음", "장구", "앞꾸밈음", record.Meta{}),
		record.Reconstruct("2", "뒷꾸밈 굴림", "음 뒤에 굴리는 뒷꾸밈", "장구", "뒷꾸밈음", record.Meta{}),
		record.Reconstruct("3", "이산가능", "피리 연주법 중 하나", "피리", "주법", record.Meta{}),
		record.Reconstruct("4", "서", "소리를 밀어 올리는 시김새", "피리", "주법", record.Meta{}),
		record.Reconstruct("5", "Tremolo", "Rapid Repetition", "Piri", "Technique", record.Meta{}),
	}
}

func testCatalog() *domcat.Catalog {
	return domcat.New([]domcat.Instrument{
		{ID: "1", Name: "janggu", Korean: "장구"},
		{ID: "2", Name: "piri", Korean: "피리"},
	}, testRecords(), 1)
}

func realScorer() *similarity.Scorer {
	return similarity.NewScorer(scorecache.New(scorecache.DefaultCapacity, nil))
}

func newTestService(t *testing.T) (*Service, *mockHistory) {
	t.Helper()
	h := &mockHistory{}
	svc := New(&mockCatalog{cat: testCatalog()}, h, realScorer(), Config{}, nil)
	return svc, h
}

func resultIDs(results []result.Result) []string {
	out := make([]string, len(results))
	for i := range results {
		r := results[i].Record()
		out[i] = r.ID()
	}
	return out
}
