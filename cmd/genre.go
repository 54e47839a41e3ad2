package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/gamedex/internal/formatter"
	"github.com/desertthunder/gamedex/internal/shared"
	"github.com/urfave/cli/v3"
)

// GenreList lists all genres from the remote catalog, sorted by name.
func (r *Runner) GenreList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.catalog == nil {
		return fmt.Errorf("%w: IGDB credentials not configured", shared.ErrMissingCredentials)
	}

	r.logger.Info("listing genres")

	genres, err := r.catalog.ListGenres(ctx)
	if err != nil {
		return fmt.Errorf("failed to list genres: %w", err)
	}

	if useJSON {
		return r.writeJSON(genres, pretty)
	}

	return r.writePlain("%s", formatter.GenresToText(genres))
}
