package similarity

import (
	"math"
	"testing"
)

type countingCache struct {
	data map[[2]string]float64
	gets int
	hits int
	puts int
}

func newCountingCache() *countingCache {
	return &countingCache{data: make(map[[2]string]float64)}
}

func (c *countingCache) Get(needle, haystack string) (float64, bool) {
	c.gets++
	v, ok := c.data[[2]string{needle, haystack}]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *countingCache) Put(needle, haystack string, score float64) {
	c.puts++
	c.data[[2]string{needle, haystack}] = score
}

func TestScorer_PartialRatioMemoizes(t *testing.T) {
	cache := newCountingCache()
	s := NewScorer(cache)

	first := s.PartialRatio("abd", "xxabcxx")
	second := s.PartialRatio("abd", "xxabcxx")

	if first != second {
		t.Errorf("memoized score changed: %f then %f", first, second)
	}
	if math.Abs(first-2.0/3.0) > 1e-12 {
		t.Errorf("PartialRatio = %f, want 2/3", first)
	}
	if cache.puts != 1 || cache.hits != 1 {
		t.Errorf("puts = %d, hits = %d, want 1 and 1", cache.puts, cache.hits)
	}
}

func TestScorer_TrivialCasesSkipCache(t *testing.T) {
	cache := newCountingCache()
	s := NewScorer(cache)

	if got := s.PartialRatio("", "abc"); got != 1 {
		t.Errorf("empty needle = %f, want 1", got)
	}
	if got := s.PartialRatio("abcd", "abc"); got != 0 {
		t.Errorf("longer needle = %f, want 0", got)
	}
	if cache.gets != 0 || cache.puts != 0 {
		t.Errorf("cache touched: gets = %d, puts = %d", cache.gets, cache.puts)
	}
}

func TestScorer_ReturnsCachedValue(t *testing.T) {
	cache := newCountingCache()
	cache.data[[2]string{"ab", "abc"}] = 0.42
	s := NewScorer(cache)

	if got := s.PartialRatio("ab", "abc"); got != 0.42 {
		t.Errorf("PartialRatio = %f, want cached 0.42", got)
	}
}

func TestScorer_NilCache(t *testing.T) {
	s := NewScorer(nil)
	if got := s.PartialRatio("abc", "xxabcxx"); got != 1 {
		t.Errorf("PartialRatio = %f, want 1", got)
	}
	if got, want := s.Similarity("kitten", "sitting"), Similarity("kitten", "sitting"); got != want {
		t.Errorf("Similarity = %f, want %f", got, want)
	}
}
