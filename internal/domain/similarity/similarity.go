// Package similarity scores how closely two strings match, in [0,1].
package similarity

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Similarity returns the normalized Levenshtein similarity (maxLen - distance) / maxLen,
// measured in runes. Two empty strings are identical; one empty side scores 0.
func Similarity(a, b string) float64 {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	if la == 0 {
		if lb == 0 {
			return 1
		}
		return 0
	}
	if lb == 0 {
		return 0
	}
	if a == b {
		return 1
	}

	maxLen := max(la, lb)
	d := edlib.LevenshteinDistance(a, b)
	return float64(maxLen-d) / float64(maxLen)
}

// PartialRatio slides a window of len(needle) runes across haystack and returns the
// best Similarity between needle and any window, stopping early on a perfect match.
// An empty needle scores 1; a needle longer than haystack scores 0.
func PartialRatio(needle, haystack string) float64 {
	n := utf8.RuneCountInString(needle)
	if n == 0 {
		return 1
	}
	m := utf8.RuneCountInString(haystack)
	if m == 0 || m < n {
		return 0
	}
	return scanWindows(needle, []rune(haystack), n)
}

func scanWindows(needle string, hay []rune, n int) float64 {
	best := 0.0
	for i := 0; i+n <= len(hay); i++ {
		s := Similarity(needle, string(hay[i:i+n]))
		if s > best {
			best = s
		}
		if best == 1 {
			break
		}
	}
	return best
}
