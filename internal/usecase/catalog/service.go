package catalog

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sigimsae/internal/domain"
	domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"
	"github.com/kailas-cloud/sigimsae/internal/domain/record"
	"github.com/kailas-cloud/sigimsae/internal/domain/search/filter"
	"github.com/kailas-cloud/sigimsae/internal/metrics"
)

// Service holds the current catalog snapshot. Readers never block writers:
// a reload swaps the whole snapshot atomically.
type Service struct {
	current atomic.Pointer[domcat.Catalog]
	loader  Loader
	logger  *zap.Logger
}

// New creates a catalog service. loader can be nil when snapshots are supplied via Replace.
func New(loader Loader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: loader, logger: logger}
}

// Load reads a fresh snapshot through the loader and installs it.
// On failure the previous snapshot stays in place.
func (s *Service) Load() error {
	if s.loader == nil {
		return fmt.Errorf("%w: no loader configured", domain.ErrCatalogUnavailable)
	}
	c, err := s.loader.Load()
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("load catalog: %w", err)
	}
	s.Replace(c)
	return nil
}

// Replace installs c as the current snapshot. A nil catalog is ignored.
func (s *Service) Replace(c *domcat.Catalog) {
	if c == nil {
		return
	}
	prev := s.current.Swap(c)
	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogRecords.Set(float64(c.Len()))

	if prev != nil && prev.Fingerprint() == c.Fingerprint() {
		s.logger.Debug("catalog unchanged", zap.Uint64("fingerprint", c.Fingerprint()))
		return
	}
	s.logger.Info("catalog installed",
		zap.Int("records", c.Len()),
		zap.Int("instruments", len(c.Instruments())),
		zap.Uint64("fingerprint", c.Fingerprint()),
	)
}

// Snapshot returns the current catalog or ErrCatalogUnavailable.
func (s *Service) Snapshot() (*domcat.Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	return c, nil
}

// All returns every record in catalog order.
func (s *Service) All() ([]record.Record, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return c.Records(), nil
}

// Get returns a record by ID.
func (s *Service) Get(id string) (record.Record, error) {
	c, err := s.Snapshot()
	if err != nil {
		return record.Record{}, err
	}
	r, ok := c.Get(id)
	if !ok {
		return record.Record{}, fmt.Errorf("record %q: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

// ByInstrument returns records of one instrument.
func (s *Service) ByInstrument(name string) ([]record.Record, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return c.ByInstrument(name), nil
}

// ByCategory returns records of one category.
func (s *Service) ByCategory(name string) ([]record.Record, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return c.ByCategory(name), nil
}

// Filter returns the records passing f.
func (s *Service) Filter(f filter.Filter) ([]record.Record, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return f.Apply(c.Records()), nil
}

// Instruments returns the instrument list.
func (s *Service) Instruments() ([]domcat.Instrument, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return c.Instruments(), nil
}

// Categories returns distinct category names.
func (s *Service) Categories() ([]string, error) {
	c, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return c.Categories(), nil
}

// Statistics returns catalog totals.
func (s *Service) Statistics() (domcat.Statistics, error) {
	c, err := s.Snapshot()
	if err != nil {
		return domcat.Statistics{}, err
	}
	return c.Statistics(), nil
}

// Fingerprint identifies the current snapshot content.
func (s *Service) Fingerprint() (uint64, error) {
	c, err := s.Snapshot()
	if err != nil {
		return 0, err
	}
	return c.Fingerprint(), nil
}
