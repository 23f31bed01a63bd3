package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sigimsae/internal/domain/record"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/mode"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/request"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/result"
	"github.com/kailas-cloud/sigimsae/internal/logger"
	"github.com/kailas-cloud/sigimsae/internal/metrics"
)

// Default scan parameters.
const (
	DefaultShardSize = 512
	DefaultWorkers   = 4
)

// Config tunes the catalog scan.
type Config struct {
	// ShardSize is the record count above which the scan fans out.
	ShardSize int
	// Workers bounds concurrent shards. 1 disables fan-out.
	Workers int
}

func (c Config) withDefaults() Config {
	if c.ShardSize <= 0 {
		c.ShardSize = DefaultShardSize
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// Service runs searches over the current catalog snapshot.
type Service struct {
	catalog CatalogReader
	history HistoryRecorder
	scorer  Scorer
	cfg     Config
	logger  *zap.Logger
}

// New creates a search service. history can be nil.
func New(
	catalog CatalogReader, history HistoryRecorder, scorer Scorer, cfg Config, log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog: catalog,
		history: history,
		scorer:  scorer,
		cfg:     cfg.withDefaults(),
		logger:  log,
	}
}

// Search filters the catalog, matches by the requested mode, applies the limit,
// and records non-blank queries in the history.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	start := time.Now()

	cat, err := s.catalog.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot: %w", err)
	}
	records := req.Filter().Apply(cat.Records())

	trimmed := strings.TrimSpace(req.Query())
	script := DetectScript(trimmed)

	var results []result.Result
	switch req.Mode() {
	case mode.Fuzzy:
		results, err = s.Fuzzy(ctx, req.Query(), records, req.Threshold())
	case mode.Substring:
		results = substring(trimmed, records, req.CaseSensitive())
	case mode.Exact:
		results = exact(trimmed, records)
	case mode.Regex:
		results = s.regex(ctx, trimmed, records, req.CaseSensitive())
	default:
		return nil, fmt.Errorf("unsupported search mode: %s", req.Mode())
	}
	if err != nil {
		return nil, err
	}

	if req.Limit() > 0 && len(results) > req.Limit() {
		results = results[:req.Limit()]
	}

	if trimmed != "" && s.history != nil {
		s.history.Add(ctx, trimmed)
	}

	m := string(req.Mode())
	metrics.SearchRequestsTotal.WithLabelValues(m, string(script)).Inc()
	metrics.SearchDuration.WithLabelValues(m).Observe(time.Since(start).Seconds())
	metrics.SearchResults.WithLabelValues(m).Observe(float64(len(results)))

	logger.FromContext(ctx, s.logger).Debug("search",
		zap.String("mode", m),
		zap.String("script", string(script)),
		zap.Int("candidates", len(records)),
		zap.Int("results", len(results)),
		zap.Duration("took", time.Since(start)),
	)
	return results, nil
}

// caseSensitiveFields are the attributes a case-sensitive substring search looks at.
var caseSensitiveFields = []string{record.FieldName, record.FieldDescription}

// substring keeps records with any field containing the query. Folded search
// covers every field; a case-sensitive one only name and description.
func substring(q string, records []record.Record, caseSensitive bool) []result.Result {
	if q == "" {
		return passThrough(records)
	}
	fields := record.Fields
	if caseSensitive {
		fields = caseSensitiveFields
	} else {
		q = strings.ToLower(q)
	}
	var out []result.Result
	for i := range records {
		for _, name := range fields {
			f := records[i].Field(name)
			if f == "" {
				continue
			}
			if !caseSensitive {
				f = strings.ToLower(f)
			}
			if strings.Contains(f, q) {
				out = append(out, result.Unscored(records[i]))
				break
			}
		}
	}
	return out
}

// exact keeps records whose name or description equals the query byte for byte.
func exact(q string, records []record.Record) []result.Result {
	if q == "" {
		return passThrough(records)
	}
	var out []result.Result
	for i := range records {
		if records[i].Name() == q || records[i].Description() == q {
			out = append(out, result.Unscored(records[i]))
		}
	}
	return out
}

// regex keeps records whose name or description matches the pattern.
// An invalid pattern is logged and the records pass through unfiltered.
func (s *Service) regex(
	ctx context.Context, pattern string, records []record.Record, caseSensitive bool,
) []result.Result {
	if pattern == "" {
		return passThrough(records)
	}
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		metrics.SearchInvalidPatternsTotal.Inc()
		logger.FromContext(ctx, s.logger).Warn("invalid search pattern, returning unfiltered records",
			zap.String("pattern", pattern), zap.Error(err))
		return passThrough(records)
	}

	var out []result.Result
	for i := range records {
		if re.MatchString(records[i].Name()) || re.MatchString(records[i].Description()) {
			out = append(out, result.Unscored(records[i]))
		}
	}
	return out
}
