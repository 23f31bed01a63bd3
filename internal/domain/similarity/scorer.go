package similarity

import "unicode/utf8"

// Cache memoizes PartialRatio results by the literal (needle, haystack) pair.
type Cache interface {
	Get(needle, haystack string) (float64, bool)
	Put(needle, haystack string, score float64)
}

// Scorer computes similarities, memoizing window scans in a Cache.
// Whole-string Similarity is cheap and never cached.
type Scorer struct {
	cache Cache
}

// NewScorer creates a Scorer. cache can be nil.
func NewScorer(cache Cache) *Scorer {
	return &Scorer{cache: cache}
}

// Similarity is the uncached whole-string score.
func (s *Scorer) Similarity(a, b string) float64 {
	return Similarity(a, b)
}

// PartialRatio returns the cached window score, computing and storing it on a miss.
// Trivial cases (empty needle, needle longer than haystack) never reach the cache.
func (s *Scorer) PartialRatio(needle, haystack string) float64 {
	n := utf8.RuneCountInString(needle)
	if n == 0 {
		return 1
	}
	m := utf8.RuneCountInString(haystack)
	if m == 0 || m < n {
		return 0
	}

	if s.cache != nil {
		if v, ok := s.cache.Get(needle, haystack); ok {
			return v
		}
	}

	best := scanWindows(needle, []rune(haystack), n)

	if s.cache != nil {
		s.cache.Put(needle, haystack, best)
	}
	return best
}
