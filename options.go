package sigimsae

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	catalogPath  string
	watchCatalog bool
	records      []Record

	driver   string
	addrs    []string
	password string
	dbPath   string

	historyKey    string
	cacheCapacity int
	workers       int
	shardSize     int
	logger        *zap.Logger
	metricsReg    prometheus.Registerer
}

// WithCatalogFile loads the catalog from an XML file.
func WithCatalogFile(path string) Option {
	return func(c *engineConfig) {
		c.catalogPath = path
	}
}

// WithCatalogWatch reloads the catalog file when it changes on disk.
func WithCatalogWatch() Option {
	return func(c *engineConfig) {
		c.watchCatalog = true
	}
}

// WithRecords uses an in-memory record list as the catalog.
// Ignored when WithCatalogFile is also given.
func WithRecords(records []Record) Option {
	return func(c *engineConfig) {
		c.records = append([]Record(nil), records...)
	}
}

// WithRedis persists search history in Redis.
func WithRedis(addrs ...string) Option {
	return func(c *engineConfig) {
		c.driver = driverRedis
		c.addrs = addrs
	}
}

// WithValkey persists search history in Valkey.
func WithValkey(addrs ...string) Option {
	return func(c *engineConfig) {
		c.driver = driverValkey
		c.addrs = addrs
	}
}

// WithPassword sets the Redis/Valkey password.
func WithPassword(password string) Option {
	return func(c *engineConfig) {
		c.password = password
	}
}

// WithSQLite persists search history in a SQLite file.
func WithSQLite(path string) Option {
	return func(c *engineConfig) {
		c.driver = driverSQLite
		c.dbPath = path
	}
}

// WithHistoryKey overrides the storage key of the search history.
func WithHistoryKey(key string) Option {
	return func(c *engineConfig) {
		c.historyKey = key
	}
}

// WithCacheCapacity bounds the window score cache.
func WithCacheCapacity(n int) Option {
	return func(c *engineConfig) {
		c.cacheCapacity = n
	}
}

// WithWorkers sets how many catalog shards are scored in parallel.
func WithWorkers(n int) Option {
	return func(c *engineConfig) {
		c.workers = n
	}
}

// WithShardSize sets the number of records per scoring shard.
func WithShardSize(n int) Option {
	return func(c *engineConfig) {
		c.shardSize = n
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithPrometheus registers engine operation metrics (counts and durations)
// on reg. Disabled by default.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(c *engineConfig) {
		c.metricsReg = reg
	}
}
