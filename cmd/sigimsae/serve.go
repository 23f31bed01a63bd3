package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/sigimsae/internal/config"
	"github.com/kailas-cloud/sigimsae/internal/db"
	"github.com/kailas-cloud/sigimsae/internal/db/memory"
	dbRedis "github.com/kailas-cloud/sigimsae/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/sigimsae/internal/db/sqlite"
	"github.com/kailas-cloud/sigimsae/internal/domain/similarity"
	logpkg "github.com/kailas-cloud/sigimsae/internal/logger"
	"github.com/kailas-cloud/sigimsae/internal/metrics"
	catalogrepo "github.com/kailas-cloud/sigimsae/internal/repository/catalog"
	historyrepo "github.com/kailas-cloud/sigimsae/internal/repository/history"
	"github.com/kailas-cloud/sigimsae/internal/repository/scorecache"
	chiTransport "github.com/kailas-cloud/sigimsae/internal/transport/chi"
	catalogsvc "github.com/kailas-cloud/sigimsae/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/sigimsae/internal/usecase/health"
	historyuc "github.com/kailas-cloud/sigimsae/internal/usecase/history"
	searchuc "github.com/kailas-cloud/sigimsae/internal/usecase/search"
	"github.com/kailas-cloud/sigimsae/internal/version"
)

// serveCommand is the composition root of the HTTP server.
func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	env := c.String("env")

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sigimsae API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("catalog", cfg.Catalog.Path),
	)

	store, err := newStore(&cfg.Database)
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	ctx := c.Context
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	catalogSvc := catalogsvc.New(catalogrepo.NewFileLoader(cfg.Catalog.Path), logger)
	if err := catalogSvc.Load(); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if cfg.Catalog.Watch {
		watcher, err := catalogrepo.NewWatcher(cfg.Catalog.Path, catalogSvc.Replace, logger)
		if err != nil {
			return fmt.Errorf("create catalog watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("start catalog watcher: %w", err)
		}
		defer func() {
			if err := watcher.Stop(); err != nil {
				logger.Warn("Error stopping catalog watcher", zap.Error(err))
			}
		}()
	}

	historySvc := historyuc.New(historyrepo.New(store, cfg.History.Key), logger)
	if err := historySvc.Load(ctx); err != nil {
		logger.Warn("Search history unavailable, starting empty", zap.Error(err))
	}

	scorer := similarity.NewScorer(scorecache.New(cfg.Search.CacheCapacity, metrics.ScoreCacheTotal))
	searchSvc := searchuc.New(catalogSvc, historySvc, scorer, searchuc.Config{
		ShardSize: cfg.Search.ShardSize,
		Workers:   cfg.Search.Workers,
	}, logger)

	healthSvc := healthuc.New(store, catalogSvc)

	server := chiTransport.NewServer(catalogSvc, searchSvc, historySvc, healthSvc, logger).
		WithDefaultLimit(cfg.Search.DefaultLimit)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// newStore creates the history store for the configured driver.
func newStore(cfg *config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverRedis, config.DriverValkey:
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
	case config.DriverSQLite:
		return dbSQLite.NewStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
