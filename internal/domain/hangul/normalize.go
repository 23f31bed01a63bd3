// Package hangul holds the text folding rules used for matching Korean and Latin text.
package hangul

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block (U+0300–U+036F).
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize folds text into its comparable form: lower-cased, whitespace removed,
// NFKD-decomposed with Latin accents dropped, restricted to letters, numbers and Hangul.
// Hangul syllables come out as conjoining jamo, so both sides of a comparison
// must go through Normalize.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)

	// transform.Chain keeps internal buffers, so it is built per call.
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(combiningMarks)),
		runes.Remove(runes.Predicate(func(r rune) bool { return !allowed(r) })),
	)
	out, _, err := transform.String(t, folded)
	if err != nil {
		return ""
	}
	return out
}

func allowed(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) ||
		isCompatConsonant(r) || isCompatVowel(r) || isSyllable(r)
}
