package sigimsae

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "data/ornaments.xml"

func newFileEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(append([]Option{WithCatalogFile(sampleCatalog)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func ids(results []SearchResult) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].ID
	}
	return out
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := createStore(&engineConfig{driver: "etcd"})
	require.Error(t, err)
}

func TestNew_RedisRequiresAddress(t *testing.T) {
	_, err := New(WithRedis())
	require.Error(t, err)
}

func TestNew_MissingCatalogFile(t *testing.T) {
	_, err := New(WithCatalogFile(filepath.Join(t.TempDir(), "missing.xml")))
	require.Error(t, err)
}

func TestEngine_WithoutCatalog(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Search(context.Background(), "덩", nil)
	assert.True(t, errors.Is(err, ErrCatalogUnavailable))
	assert.True(t, errors.Is(e.Reload(), ErrCatalogUnavailable))
}

func TestEngine_SearchModes(t *testing.T) {
	e := newFileEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		opts  *SearchOptions
		want  []string
	}{
		{"fuzzy exact name", "이산가능", nil, []string{"4"}},
		{"fuzzy choseong", "ㅇㅅㄱㄴ", nil, []string{"4"}},
		{"substring", "꾸밈", &SearchOptions{Mode: ModeSubstring}, []string{"1", "2", "3"}},
		{"exact", "서", &SearchOptions{Mode: ModeExact}, []string{"5"}},
		{"regex", "^뒷", &SearchOptions{Mode: ModeRegex}, []string{"3"}},
		{"blank query lists filtered catalog", "", &SearchOptions{Instruments: []string{"피리"}}, []string{"4", "5"}},
		{"type filter", "", &SearchOptions{Types: []string{TypeBack}}, []string{"3"}},
		{"limit", "", &SearchOptions{Limit: 2}, []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Search(ctx, tt.query, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestEngine_SearchScores(t *testing.T) {
	e := newFileEngine(t)

	got, err := e.Search(context.Background(), "이산가능", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Score)
	assert.InDelta(t, 1.0, *got[0].Score, 1e-9)
	assert.Equal(t, "isan.png", got[0].Filename)

	got, err = e.Search(context.Background(), "서", &SearchOptions{Mode: ModeExact})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Score)
}

func TestEngine_SearchInvalidRequest(t *testing.T) {
	e := newFileEngine(t)

	_, err := e.Search(context.Background(), "x", &SearchOptions{Mode: "phonetic"})
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	bad := 2.0
	_, err = e.Search(context.Background(), "x", &SearchOptions{Threshold: &bad})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestEngine_SearchRecordsHistory(t *testing.T) {
	e := newFileEngine(t)
	ctx := context.Background()

	_, err := e.Search(ctx, "  덩 ", nil)
	require.NoError(t, err)
	_, err = e.Search(ctx, "   ", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"덩"}, e.SearchHistory(ctx))

	assert.True(t, e.AddToSearchHistory(ctx, "서"))
	assert.False(t, e.AddToSearchHistory(ctx, ""))
	assert.Equal(t, []string{"서", "덩"}, e.SearchHistory(ctx))

	e.ClearSearchHistory(ctx)
	assert.Empty(t, e.SearchHistory(ctx))
}

func TestEngine_FuzzyDoesNotTouchHistory(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	defer e.Close()
	ctx := context.Background()

	records := []Record{
		{ID: "a", Name: "피리 연주법"},
		{ID: "b", Name: "가야금"},
	}
	got, err := e.Fuzzy(ctx, "피리", records, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids(got))
	assert.InDelta(t, 1.0, *got[0].Score, 1e-9)
	assert.Empty(t, e.SearchHistory(ctx))

	got, err = e.Fuzzy(ctx, "", records, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got))
	assert.Nil(t, got[0].Score)
}

func TestEngine_WithRecords(t *testing.T) {
	e, err := New(WithRecords([]Record{
		{ID: "1", Name: "농현", InstrumentName: "가야금", CategoryName: "주법"},
		{ID: "2", Name: "추성", InstrumentName: "가야금", CategoryName: "주법"},
	}))
	require.NoError(t, err)
	defer e.Close()

	rec, err := e.Record("2")
	require.NoError(t, err)
	assert.Equal(t, "추성", rec.Name)

	_, err = e.Record("9")
	assert.True(t, errors.Is(err, ErrNotFound))

	all, err := e.Records()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestEngine_Suggestions(t *testing.T) {
	e := newFileEngine(t)
	ctx := context.Background()

	e.AddToSearchHistory(ctx, "앞꾸밈")

	got, err := e.Suggestions(ctx, "꾸밈", 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "앞꾸밈", got[0])
	assert.LessOrEqual(t, len(got), 3)
}

func TestEngine_QueryBuilder(t *testing.T) {
	e := newFileEngine(t)

	got, err := e.Query("꾸밈").Mode(ModeSubstring).Instrument("장구").Type(TypeFront).Limit(5).Do(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, ids(got))

	_, err = e.Query("x").Threshold(-1).Do(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestEngine_SQLiteHistoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	first, err := New(WithCatalogFile(sampleCatalog), WithSQLite(path))
	require.NoError(t, err)
	_, err = first.Search(ctx, "이산가능", nil)
	require.NoError(t, err)
	require.NoError(t, first.Ping(ctx))
	first.Close()

	second, err := New(WithCatalogFile(sampleCatalog), WithSQLite(path))
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, []string{"이산가능"}, second.SearchHistory(ctx))
}

func TestEngine_CatalogWatch(t *testing.T) {
	data, err := os.ReadFile(sampleCatalog)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ornaments.xml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	e, err := New(WithCatalogFile(path), WithCatalogWatch())
	require.NoError(t, err)
	require.NotNil(t, e.watcher)
	require.NoError(t, e.Reload())
	e.Close()
}
