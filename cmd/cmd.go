// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/watchlist/internal/formatter"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

// setupCommand initializes the database schema.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "setup",
		Aliases: []string{"initdb"},
		Usage:   "Initialize database and run migrations",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "drop",
				Usage: "Drop all tables before creating them again",
			},
		},
		Action: r.Setup,
	}
}

// adminCommand creates or updates the administrator account.
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Create or update the administrator",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "username",
				Aliases:  []string{"u"},
				Usage:    "Administrator username",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Administrator password (prompted without echo when omitted)",
			},
		},
		Action: r.Admin,
	}
}

// forgeCommand seeds sample data.
func forgeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "forge",
		Usage: "Seed the catalog with sample movies",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Also set the administrator's display name",
			},
		},
		Action: r.Forge,
	}
}

// serveCommand runs the web application.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"run"},
		Usage:   "Run the watchlist web application",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides server.port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the application in the default browser",
			},
		},
		Action: r.Serve,
	}
}

// moviesCommand handles catalog inspection from the terminal.
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "movies",
		Usage: "Catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all movies",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MoviesList,
			},
			{
				Name:  "export",
				Usage: "Export the catalog to a file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, md or json)",
						Value:   string(formatter.FormatCSV),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: watchlist.<format>)",
					},
				},
				Action: r.MoviesExport,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing the catalog.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse the catalog in the terminal",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
