package mode

// Mode is the matching strategy.
type Mode string

// Search mode constants.
const (
	// Fuzzy ranks records by Hangul-aware edit-distance similarity.
	Fuzzy Mode = "fuzzy"
	// Substring keeps records with a field containing the query.
	Substring Mode = "substring"
	Exact     Mode = "exact"
	Regex     Mode = "regex"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Fuzzy || m == Substring || m == Exact || m == Regex
}

// Script is the alphabet a fuzzy query is compared in.
type Script string

// Script constants.
const (
	// Normal compares normalized text.
	Normal Script = "normal"
	// Choseong compares leading-consonant sequences only.
	Choseong Script = "choseong"
)
