package hangul

import "strings"

// Hangul code point layout.
const (
	syllableFirst = 0xAC00 // 가
	syllableLast  = 0xD7A3 // 힣

	jungseongCount = 21
	jongseongCount = 28

	compatConsonantFirst = 0x3131 // ㄱ
	compatConsonantLast  = 0x314E // ㅎ
	compatVowelFirst     = 0x314F // ㅏ
	compatVowelLast      = 0x3163 // ㅣ
)

// choseong lists the 19 leading consonants in syllable-block order.
var choseong = [...]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// ToChoseong reduces text to the leading consonants of its syllables.
// Bare consonant jamo pass through; everything else is dropped.
func ToChoseong(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range text {
		switch {
		case isSyllable(r):
			b.WriteRune(choseong[(r-syllableFirst)/(jungseongCount*jongseongCount)])
		case isCompatConsonant(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsChoseongQuery reports whether q consists only of consonant jamo (e.g. "ㅇㅅㄱㄴ").
func IsChoseongQuery(q string) bool {
	if q == "" {
		return false
	}
	for _, r := range q {
		if !isCompatConsonant(r) {
			return false
		}
	}
	return true
}

func isSyllable(r rune) bool { return r >= syllableFirst && r <= syllableLast }

func isCompatConsonant(r rune) bool { return r >= compatConsonantFirst && r <= compatConsonantLast }

func isCompatVowel(r rune) bool { return r >= compatVowelFirst && r <= compatVowelLast }
