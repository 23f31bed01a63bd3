package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/sigimsae/internal/config"
	"github.com/kailas-cloud/sigimsae/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "sigimsae",
		Usage:   "Korean-aware fuzzy search over the ornament catalog",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: config/<ENV>.yaml)",
			},
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Environment name used to locate the config file",
				EnvVars: []string{"ENV"},
				Value:   "local",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
			},
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "Search the catalog",
				ArgsUsage: "QUERY",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:    "threshold",
						Aliases: []string{"t"},
						Usage:   "Minimum fuzzy score (default: chosen by query length)",
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "fuzzy, substring, exact or regex",
						Value:   "fuzzy",
					},
					&cli.StringSliceFlag{
						Name:  "instrument",
						Usage: "Restrict to instrument (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "Restrict to category (repeatable)",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results (0 = no limit)",
					},
					&cli.BoolFlag{
						Name:  "case-sensitive",
						Usage: "Disable case folding in substring and regex modes",
					},
					&cli.BoolFlag{
						Name:    "json",
						Aliases: []string{"j"},
						Usage:   "Output as JSON",
					},
				},
				Action: searchCommand,
			},
			{
				Name:  "history",
				Usage: "Inspect or clear the search history",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Print recent queries, newest first",
						Action: historyListCommand,
					},
					{
						Name:   "clear",
						Usage:  "Remove all remembered queries",
						Action: historyClearCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads --config when given, otherwise config/<env>.yaml.
// A missing environment file falls back to built-in defaults.
func loadConfig(c *cli.Context) (config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config from %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(c.String("env"))
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
