package history

import "strings"

// MaxEntries caps the number of remembered queries.
const MaxEntries = 10

// History is an ordered, deduplicated list of past queries, most recent first.
type History struct {
	entries []string
}

// New rebuilds a History from stored entries, dropping blanks and duplicates
// and enforcing the cap. Stored order is kept.
func New(entries []string) History {
	out := make([]string, 0, min(len(entries), MaxEntries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
		if len(out) == MaxEntries {
			break
		}
	}
	return History{entries: out}
}

// Add returns a history with the trimmed query moved to the front.
// Blank queries leave the history unchanged and report false.
func (h History) Add(query string) (History, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return h, false
	}

	out := make([]string, 0, MaxEntries)
	out = append(out, q)
	for _, e := range h.entries {
		if e == q {
			continue
		}
		if len(out) == MaxEntries {
			break
		}
		out = append(out, e)
	}
	return History{entries: out}, true
}

// Entries returns a copy of the queries, most recent first.
func (h History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h History) Len() int { return len(h.entries) }

// Matching returns entries whose lower-cased form contains the lower-cased term.
func (h History) Matching(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []string
	for _, e := range h.entries {
		if strings.Contains(strings.ToLower(e), term) {
			out = append(out, e)
		}
	}
	return out
}
