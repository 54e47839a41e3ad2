package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/gamedex/internal/formatter"
	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/repositories"
	"github.com/desertthunder/gamedex/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConsoleAdd adds a console for an already resolved platform.
func (r *Runner) ConsoleAdd(ctx context.Context, cmd *cli.Command) error {
	platformID := cmd.Int("platform-id")
	nickname := cmd.String("nickname")
	notes := cmd.String("notes")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	// The platform must be synced locally first; consoles reference it
	// by IGDB id.
	platforms := repositories.NewPlatformRepository(db)
	platform, err := platforms.GetByRemoteID(int(platformID))
	if err != nil {
		return fmt.Errorf("%w: platform %d is not synced locally, run 'gamedex platform resolve' first", shared.ErrInvalidArgument, platformID)
	}

	console := models.NewConsole(platform.RemoteID, nickname, notes)
	if err := repositories.NewConsoleRepository(db).Create(console); err != nil {
		return fmt.Errorf("failed to create console: %w", err)
	}

	r.logger.Info("console added", "id", console.ID, "platform", platform.Name)
	r.writePlain("✓ Added %s (%s)\n", console.Nickname, platform.Name)
	r.writePlain("  ID: %s\n", console.ID)
	return nil
}

// ConsoleList lists consoles in the collection.
func (r *Runner) ConsoleList(ctx context.Context, cmd *cli.Command) error {
	platformID := cmd.Int("platform-id")
	useJSON := cmd.Bool("json")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	consoles, err := repositories.NewConsoleRepository(db).List(map[string]any{
		"igdb_platform_id": int(platformID),
	})
	if err != nil {
		return fmt.Errorf("failed to list consoles: %w", err)
	}

	if useJSON {
		return r.writeJSON(consoles, true)
	}

	if len(consoles) == 0 {
		r.writePlain("No consoles in the collection yet.\n")
		return nil
	}

	r.writePlain("Found %d consoles:\n\n", len(consoles))
	for i, console := range consoles {
		r.writePlain("%d. %s\n", i+1, console.Nickname)
		r.writePlain("   ID: %s\n", console.ID)
		r.writePlain("   Platform: %d\n", console.IGDBPlatformID)
		if console.Notes != "" {
			r.writePlain("   Notes: %s\n", console.Notes)
		}
		r.writePlain("\n")
	}

	return nil
}

// ConsoleExport exports a console's game list to a file.
func (r *Runner) ConsoleExport(ctx context.Context, cmd *cli.Command) error {
	consoleID := cmd.String("id")
	format := cmd.String("format")
	outputPath := cmd.String("output")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	console, err := repositories.NewConsoleRepository(db).Get(consoleID)
	if err != nil {
		return fmt.Errorf("failed to get console: %w", err)
	}

	games, err := repositories.NewGameRepository(db).List(map[string]any{
		"console_id": console.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	export := &formatter.CollectionExport{Console: console, Games: games}
	written, err := formatter.WriteExport(export, format, outputPath)
	if err != nil {
		return err
	}

	r.logger.Infof("exported %d games to %v", len(games), written)
	r.writePlain("✓ Exported %s to %s\n", console.Nickname, written)
	r.writePlain("  Games: %d\n", len(games))
	return nil
}
