package sigimsae

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/sigimsae/internal/db"
	"github.com/kailas-cloud/sigimsae/internal/db/memory"
	dbRedis "github.com/kailas-cloud/sigimsae/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/sigimsae/internal/db/sqlite"
	"github.com/kailas-cloud/sigimsae/internal/domain"
	domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"
	"github.com/kailas-cloud/sigimsae/internal/domain/similarity"
	"github.com/kailas-cloud/sigimsae/internal/metrics"
	catalogrepo "github.com/kailas-cloud/sigimsae/internal/repository/catalog"
	historyrepo "github.com/kailas-cloud/sigimsae/internal/repository/history"
	"github.com/kailas-cloud/sigimsae/internal/repository/scorecache"
	catalogsvc "github.com/kailas-cloud/sigimsae/internal/usecase/catalog"
	historyuc "github.com/kailas-cloud/sigimsae/internal/usecase/history"
	searchuc "github.com/kailas-cloud/sigimsae/internal/usecase/search"
)

const (
	driverMemory = "memory"
	driverRedis  = "redis"
	driverValkey = "valkey"
	driverSQLite = "sqlite"

	defaultReadinessTimeout = 10 * time.Second
)

// Errors returned by Engine methods. Match with errors.Is.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrInvalidRequest     = domain.ErrInvalidRequest
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)

// Engine is the embeddable ornament search entry point.
type Engine struct {
	store   db.Store
	catalog *catalogsvc.Service
	history *historyuc.Service
	search  *searchuc.Service
	watcher *catalogrepo.Watcher
	obs     *observer
	logger  *zap.Logger
}

// New creates an Engine, connects the history store and loads the catalog.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{driver: driverMemory}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("sigimsae: database not ready: %w", err)
	}

	e, err := wireEngine(ctx, store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return e, nil
}

func createStore(cfg *engineConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverRedis, driverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("sigimsae: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	case driverSQLite:
		s, err := dbSQLite.NewStore(cfg.dbPath)
		if err != nil {
			return nil, fmt.Errorf("sigimsae: create sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("sigimsae: unknown driver %q", cfg.driver)
	}
}

func wireEngine(ctx context.Context, store db.Store, cfg *engineConfig) (*Engine, error) {
	log := cfg.logger

	obs, err := newObserver(log, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var loader catalogsvc.Loader
	if cfg.catalogPath != "" {
		loader = catalogrepo.NewFileLoader(cfg.catalogPath)
	}
	catSvc := catalogsvc.New(loader, log)
	switch {
	case loader != nil:
		if err := catSvc.Load(); err != nil {
			return nil, fmt.Errorf("sigimsae: %w", err)
		}
	case cfg.records != nil:
		catSvc.Replace(catalogFromRecords(cfg.records))
	}

	key := cfg.historyKey
	if key == "" {
		key = historyrepo.DefaultKey
	}
	histSvc := historyuc.New(historyrepo.New(store, key), log)
	if err := histSvc.Load(ctx); err != nil {
		log.Warn("search history unavailable, starting empty", zap.Error(err))
	}

	scorer := similarity.NewScorer(scorecache.New(cfg.cacheCapacity, metrics.ScoreCacheTotal))
	searchSvc := searchuc.New(catSvc, histSvc, scorer, searchuc.Config{
		ShardSize: cfg.shardSize,
		Workers:   cfg.workers,
	}, log)

	e := &Engine{
		store:   store,
		catalog: catSvc,
		history: histSvc,
		search:  searchSvc,
		obs:     obs,
		logger:  log,
	}

	if cfg.watchCatalog && cfg.catalogPath != "" {
		w, err := catalogrepo.NewWatcher(cfg.catalogPath, catSvc.Replace, log)
		if err != nil {
			return nil, fmt.Errorf("sigimsae: %w", err)
		}
		if err := w.Start(context.Background()); err != nil {
			return nil, fmt.Errorf("sigimsae: %w", err)
		}
		e.watcher = w
	}

	return e, nil
}

// catalogFromRecords builds a snapshot whose instruments are the distinct instrument names.
func catalogFromRecords(records []Record) *domcat.Catalog {
	var instruments []domcat.Instrument
	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.InstrumentName]; ok {
			continue
		}
		seen[r.InstrumentName] = struct{}{}
		instruments = append(instruments, domcat.Instrument{
			ID:     r.InstrumentID,
			Korean: r.InstrumentName,
		})
	}
	return domcat.New(instruments, toInternalRecords(records), 0)
}

// Reload re-reads the catalog file. Returns ErrCatalogUnavailable when the
// engine was built without WithCatalogFile.
func (e *Engine) Reload() error {
	if err := e.catalog.Load(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

// Ping checks history store connectivity.
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close stops the catalog watcher and releases the history store.
func (e *Engine) Close() {
	if e.watcher != nil {
		if err := e.watcher.Stop(); err != nil {
			e.logger.Warn("stop catalog watcher", zap.Error(err))
		}
	}
	if e.store != nil {
		e.store.Close()
	}
}
