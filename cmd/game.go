package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/repositories"
	"github.com/desertthunder/gamedex/internal/shared"
	"github.com/urfave/cli/v3"
)

// GameSearch searches the remote catalog for games on a platform.
func (r *Runner) GameSearch(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	platformID := cmd.Int("platform-id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if term == "" {
		return fmt.Errorf("%w: a search term is required", shared.ErrMissingArgument)
	}
	if r.catalog == nil {
		return fmt.Errorf("%w: IGDB credentials not configured", shared.ErrMissingCredentials)
	}

	r.logger.Infof("searching games for %q on platform %d", term, platformID)

	games, err := r.catalog.SearchGames(ctx, term, int(platformID))
	if err != nil {
		return fmt.Errorf("game search failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(games, pretty)
	}

	if len(games) == 0 {
		r.writePlain("No games match %q on platform %d\n", term, platformID)
		return nil
	}

	r.writePlain("Found %d games:\n\n", len(games))
	for i, game := range games {
		r.writePlain("%d. %s\n", i+1, game.Name)
		r.writePlain("   ID: %d\n", game.ID)
		if game.FirstRelease > 0 {
			r.writePlain("   Released: %s\n", time.Unix(game.FirstRelease, 0).Format("2006"))
		}
		if game.Rating > 0 {
			r.writePlain("   Rating: %.0f\n", game.Rating)
		}
		r.writePlain("\n")
	}

	return nil
}

// GameAdd tracks a game on a console.
func (r *Runner) GameAdd(ctx context.Context, cmd *cli.Command) error {
	consoleID := cmd.String("console-id")
	igdbID := cmd.Int("igdb-id")
	name := cmd.String("name")
	status := cmd.String("status")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := repositories.NewConsoleRepository(db).Get(consoleID); err != nil {
		return fmt.Errorf("%w: console %s not found", shared.ErrInvalidArgument, consoleID)
	}

	game := models.NewGame(consoleID, int(igdbID), name, status)
	if err := repositories.NewGameRepository(db).Create(game); err != nil {
		return fmt.Errorf("failed to track game: %w", err)
	}

	r.logger.Info("game tracked", "name", name, "console", consoleID)
	r.writePlain("✓ Tracking %s [%s]\n", game.Name, game.Status)
	return nil
}

// GameList lists tracked games with optional filters.
func (r *Runner) GameList(ctx context.Context, cmd *cli.Command) error {
	consoleID := cmd.String("console-id")
	status := cmd.String("status")
	useJSON := cmd.Bool("json")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := repositories.NewGameRepository(db).List(map[string]any{
		"console_id": consoleID,
		"status":     status,
	})
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if useJSON {
		return r.writeJSON(games, true)
	}

	if len(games) == 0 {
		r.writePlain("No games tracked yet.\n")
		return nil
	}

	r.writePlain("Found %d games:\n\n", len(games))
	for i, game := range games {
		r.writePlain("%d. %s [%s]\n", i+1, game.Name, game.Status)
		r.writePlain("   ID: %s\n", game.ID)
		r.writePlain("   IGDB: %d\n", game.IGDBGameID)
		r.writePlain("\n")
	}

	return nil
}
