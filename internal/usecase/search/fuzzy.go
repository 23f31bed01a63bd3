package search

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/sigimsae/internal/domain/hangul"
	"github.com/kailas-cloud/sigimsae/internal/domain/record"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/mode"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/result"
)

// DefaultThreshold returns the minimum score for a trimmed query of the given text.
// Short queries must match almost exactly; longer ones tolerate more edits.
func DefaultThreshold(trimmed string) float64 {
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n <= 2:
		return 0.9
	case n <= 4:
		return 0.7
	default:
		return 0.6
	}
}

// DetectScript reports which alphabet a trimmed query is compared in.
func DetectScript(trimmed string) mode.Script {
	if hangul.IsChoseongQuery(trimmed) {
		return mode.Choseong
	}
	return mode.Normal
}

// Fuzzy ranks records against query. A blank query returns every record unscored
// in input order. threshold overrides the length-based default when non-nil.
func (s *Service) Fuzzy(
	ctx context.Context, query string, records []record.Record, threshold *float64,
) ([]result.Result, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return passThrough(records), nil
	}

	var score func(field string) float64
	if DetectScript(trimmed) == mode.Choseong {
		score = func(field string) float64 { return choseongFieldScore(s.scorer, trimmed, field) }
	} else {
		norm := hangul.Normalize(trimmed)
		score = func(field string) float64 { return fieldScore(s.scorer, norm, field) }
	}

	th := DefaultThreshold(trimmed)
	if threshold != nil {
		th = *threshold
	}

	scores, err := s.scoreAll(ctx, records, score)
	if err != nil {
		return nil, err
	}

	out := make([]result.Result, 0, len(records))
	for i, sc := range scores {
		if sc >= th {
			out = append(out, result.New(records[i], roundScore(sc)))
		}
	}
	slices.SortStableFunc(out, func(a, b result.Result) int {
		switch {
		case a.Score() > b.Score():
			return -1
		case a.Score() < b.Score():
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

// scoreAll scores records in place order. Large catalogs are split into shards
// scored concurrently; cancellation is checked before each shard.
func (s *Service) scoreAll(
	ctx context.Context, records []record.Record, score func(string) float64,
) ([]float64, error) {
	scores := make([]float64, len(records))

	if s.cfg.Workers <= 1 || len(records) <= s.cfg.ShardSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fuzzy search: %w", err)
		}
		for i := range records {
			scores[i] = recordScore(&records[i], score)
		}
		return scores, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for start := 0; start < len(records); start += s.cfg.ShardSize {
		start := start
		end := min(start+s.cfg.ShardSize, len(records))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				scores[i] = recordScore(&records[i], score)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fuzzy search: %w", err)
	}
	return scores, nil
}

func roundScore(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func passThrough(records []record.Record) []result.Result {
	out := make([]result.Result, len(records))
	for i := range records {
		out[i] = result.Unscored(records[i])
	}
	return out
}
