package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var catalog *igdb.Catalog
	var executor igdb.Executor

	if config.Credentials.IGDB.ClientID != "" && config.Credentials.IGDB.ClientSecret != "" {
		tokens := igdb.NewTokenSource(
			config.Credentials.IGDB.ClientID,
			config.Credentials.IGDB.ClientSecret,
			config.Credentials.IGDB.TokenURL,
			nil,
		)

		client := igdb.NewClient(config.Credentials.IGDB.ClientID, tokens, igdb.ClientOpts{
			BaseURL: config.Credentials.IGDB.BaseURL,
			Limiter: rate.NewLimiter(rate.Limit(config.Sync.RateLimit), 1),
			Logger:  logger,
		})
		executor = client
		catalog = igdb.NewCatalog(client)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Catalog:  catalog,
		Executor: executor,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "gamedex",
		Usage:    "Track your game collection against the IGDB catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
