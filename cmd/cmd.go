// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml template to the given path",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the generated config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// platformCommand handles remote platform search and local catalog sync.
func platformCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "platform",
		Aliases: []string{"plat"},
		Usage:   "Search and sync game platforms",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the remote catalog for platforms",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "term",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlatformSearch,
			},
			{
				Name:  "resolve",
				Usage: "Resolve a search term into the local catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "term",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlatformResolve,
			},
			{
				Name:      "sync",
				Usage:     "Resolve multiple search terms concurrently",
				ArgsUsage: "[terms...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent resolution workers",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlatformSync,
			},
			{
				Name:  "list",
				Usage: "List locally synced platforms",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Filter by name substring",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: text, csv, json",
						Value: "text",
					},
				},
				Action: r.PlatformList,
			},
		},
	}
}

// genreCommand handles genre reference data.
func genreCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genre",
		Usage: "Genre reference data",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all genres sorted by name",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.GenreList,
			},
		},
	}
}

// consoleCommand handles consoles in the local collection.
func consoleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "console",
		Usage: "Manage consoles in your collection",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a console for a resolved platform",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "platform-id",
						Usage:    "IGDB platform id (resolve it first)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "nickname",
						Usage:    "Display name for the console",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Free-form notes",
					},
				},
				Action: r.ConsoleAdd,
			},
			{
				Name:  "list",
				Usage: "List consoles in the collection",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "platform-id",
						Usage: "Filter by IGDB platform id",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ConsoleList,
			},
			{
				Name:  "export",
				Usage: "Export a console's game list",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Console ID to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, markdown, txt",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.ConsoleExport,
			},
		},
	}
}

// gameCommand handles tracked games.
func gameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "game",
		Usage: "Search and track games",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the remote catalog for games on a platform",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "term",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "platform-id",
						Usage:    "IGDB platform id to scope the search",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.GameSearch,
			},
			{
				Name:  "add",
				Usage: "Track a game on a console",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "console-id",
						Usage:    "Console the game belongs to",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "igdb-id",
						Usage:    "IGDB game id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Game title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Collection status: owned, wishlist, lent",
					},
				},
				Action: r.GameAdd,
			},
			{
				Name:  "list",
				Usage: "List tracked games",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "console-id",
						Usage: "Filter by console",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GameList,
			},
		},
	}
}

// apiCommand handles raw Apicalypse queries for debugging.
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct Apicalypse queries against IGDB",
		Commands: []*cli.Command{
			{
				Name:  "query",
				Usage: "POST a raw query to a resource endpoint, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "resource",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "body",
						Aliases:  []string{"b"},
						Usage:    "Apicalypse query body",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIQuery,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive platform resolution.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for platform resolution",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "term",
			},
		},
		Action: r.TUI,
	}
}
