package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/gamedex/internal/formatter"
	"github.com/desertthunder/gamedex/internal/repositories"
	"github.com/desertthunder/gamedex/internal/shared"
	"github.com/desertthunder/gamedex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlatformSearch searches the remote catalog and prints the candidates.
func (r *Runner) PlatformSearch(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if term == "" {
		return fmt.Errorf("%w: a search term is required", shared.ErrMissingArgument)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: IGDB credentials not configured", shared.ErrMissingCredentials)
	}

	r.logger.Infof("searching platforms for %q", term)

	platforms, err := r.catalog.SearchPlatforms(ctx, term)
	if err != nil {
		return fmt.Errorf("platform search failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(platforms, pretty)
	}

	if len(platforms) == 0 {
		r.writePlain("No platforms match %q\n", term)
		return nil
	}

	r.writePlain("Found %d platforms:\n\n", len(platforms))
	for i, p := range platforms {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   ID: %d\n", p.ID)
		if p.Abbreviation != "" {
			r.writePlain("   Abbreviation: %s\n", p.Abbreviation)
		}
		if p.Generation > 0 {
			r.writePlain("   Generation: %s\n", shared.FormatGeneration(p.Generation))
		}
		r.writePlain("\n")
	}

	return nil
}

// PlatformResolve resolves a search term into the local catalog.
func (r *Runner) PlatformResolve(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if term == "" {
		return fmt.Errorf("%w: a search term is required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	resolver, err := r.newResolver(db)
	if err != nil {
		return err
	}

	r.logger.Infof("resolving platform %q", term)

	result, err := resolver.ResolvePlatform(ctx, nil, term)
	partial := errors.Is(err, shared.ErrPartialData)
	if err != nil && !partial {
		return fmt.Errorf("resolution failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	if partial {
		r.writePlain("⚠ Synced %s (id %d) with missing dependents\n", result.Platform.Name, result.Platform.RemoteID)
	} else {
		r.writePlain("✓ Synced %s (id %d)\n", result.Platform.Name, result.Platform.RemoteID)
	}
	for name, outcome := range result.Dependents {
		r.writePlain("  %s: %s\n", name, outcome.Status)
	}

	return nil
}

// PlatformSync resolves multiple terms concurrently.
func (r *Runner) PlatformSync(ctx context.Context, cmd *cli.Command) error {
	terms := cmd.Args().Slice()
	useJSON := cmd.Bool("json")
	workers := cmd.Int("workers")

	if len(terms) == 0 {
		return fmt.Errorf("%w: at least one search term is required", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	resolver, err := r.newResolver(db)
	if err != nil {
		return err
	}

	opts := tasks.SyncOpts{
		NumWorkers: int(workers),
		RateLimit:  r.config.Sync.RateLimit,
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = r.config.Sync.Workers
	}

	r.logger.Infof("syncing %d platforms with %d workers", len(terms), opts.NumWorkers)

	result, err := resolver.SyncPlatforms(ctx, nil, terms, opts)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, true)
	}

	r.writePlain("Synced %d/%d platforms (%d partial, %d failed)\n\n", result.Resolved, result.Total, result.Partial, result.Failed)
	for _, res := range result.Results {
		switch {
		case res.Error != nil:
			r.writePlain("✗ %s: %v\n", res.Term, res.Error)
		case res.Partial:
			r.writePlain("⚠ %s → %s (id %d)\n", res.Term, res.Platform.Name, res.Platform.RemoteID)
		default:
			r.writePlain("✓ %s → %s (id %d)\n", res.Term, res.Platform.Name, res.Platform.RemoteID)
		}
	}

	return nil
}

// PlatformList lists locally synced platforms.
func (r *Runner) PlatformList(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("name")
	format := cmd.String("format")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPlatformRepository(db)
	platforms, err := repo.List(map[string]any{"name": name})
	if err != nil {
		return fmt.Errorf("failed to list platforms: %w", err)
	}

	switch format {
	case "json":
		return r.writeJSON(platforms, true)
	case "csv":
		data, err := formatter.PlatformsToCSV(platforms)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		if len(platforms) == 0 {
			r.writePlain("No platforms synced yet. Run 'gamedex platform resolve <term>' first.\n")
			return nil
		}
		return r.writePlain("%s", formatter.PlatformsToText(platforms))
	}
}
