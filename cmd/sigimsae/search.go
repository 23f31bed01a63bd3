package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/sigimsae"
	"github.com/kailas-cloud/sigimsae/internal/config"
	logpkg "github.com/kailas-cloud/sigimsae/internal/logger"
)

// openEngine builds an Engine from the loaded config. CLI runs log warnings only.
func openEngine(c *cli.Context) (*sigimsae.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger, err := logpkg.NewLogger("cli", cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	opts := []sigimsae.Option{
		sigimsae.WithCatalogFile(cfg.Catalog.Path),
		sigimsae.WithHistoryKey(cfg.History.Key),
		sigimsae.WithCacheCapacity(cfg.Search.CacheCapacity),
		sigimsae.WithShardSize(cfg.Search.ShardSize),
		sigimsae.WithWorkers(cfg.Search.Workers),
		sigimsae.WithLogger(logger),
	}
	switch cfg.Database.Driver {
	case config.DriverRedis:
		opts = append(opts, sigimsae.WithRedis(cfg.Database.Addrs...), sigimsae.WithPassword(cfg.Database.Password))
	case config.DriverValkey:
		opts = append(opts, sigimsae.WithValkey(cfg.Database.Addrs...), sigimsae.WithPassword(cfg.Database.Password))
	case config.DriverSQLite:
		opts = append(opts, sigimsae.WithSQLite(cfg.Database.Path))
	}

	engine, err := sigimsae.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("open engine: %w", err)
	}
	return engine, nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: sigimsae search [flags] QUERY")
	}
	query := strings.Join(c.Args().Slice(), " ")

	opts := &sigimsae.SearchOptions{
		Mode:          sigimsae.SearchMode(c.String("mode")),
		Instruments:   c.StringSlice("instrument"),
		Categories:    c.StringSlice("category"),
		CaseSensitive: c.Bool("case-sensitive"),
		Limit:         c.Int("limit"),
	}
	if c.IsSet("threshold") {
		t := c.Float64("threshold")
		opts.Threshold = &t
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.Search(c.Context, query, opts)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}
	for _, r := range results {
		score := "     -"
		if r.Score != nil {
			score = fmt.Sprintf("%.4f", *r.Score)
		}
		fmt.Printf("%s  %-4s %s  [%s / %s]\n", score, r.ID, r.Name, r.InstrumentName, r.CategoryName)
	}
	fmt.Printf("\n%d result(s)\n", len(results))
	return nil
}
