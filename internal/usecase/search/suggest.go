package search

import (
	"context"
	"fmt"
	"strings"
)

// DefaultSuggestions is the suggestion count used when max is not positive.
const DefaultSuggestions = 5

// Suggestions completes a partial query. A blank query yields recent history;
// otherwise matching history entries come first, then matching record names.
func (s *Service) Suggestions(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSuggestions
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		if s.history == nil {
			return []string{}, nil
		}
		recent := s.history.List(ctx)
		return append([]string{}, recent[:min(limit, len(recent))]...), nil
	}

	out := make([]string, 0, limit)
	seen := make(map[string]struct{})
	add := func(v string) bool {
		if _, ok := seen[v]; ok {
			return len(out) < limit
		}
		seen[v] = struct{}{}
		out = append(out, v)
		return len(out) < limit
	}

	if s.history != nil {
		for _, h := range s.history.Matching(ctx, term) {
			if !add(h) {
				return out, nil
			}
		}
	}

	cat, err := s.catalog.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}
	records := cat.Records()
	for i := range records {
		name := records[i].Name()
		if name != "" && strings.Contains(strings.ToLower(name), term) && !add(name) {
			break
		}
	}
	return out, nil
}
