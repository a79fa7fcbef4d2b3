package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/watchlist/internal/formatter"
	"github.com/urfave/cli/v3"
)

// MoviesList prints the catalog as a numbered list or JSON.
func (r *Runner) MoviesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	creds, store, err := r.stores()
	if err != nil {
		return err
	}

	movies, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list movies: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(r.heading(ctx, creds))
	if len(movies) == 0 {
		return r.writePlain("No movies yet.\n")
	}

	for _, movie := range movies {
		if err := r.writePlain("%4d. %s (%s)\n", movie.ID, movie.Title, movie.Year); err != nil {
			return err
		}
	}

	return r.writePlain("\n%d Titles\n", len(movies))
}

// MoviesExport writes the catalog to a CSV, Markdown or JSON file.
func (r *Runner) MoviesExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	creds, store, err := r.stores()
	if err != nil {
		return err
	}

	movies, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list movies: %w", err)
	}

	path, err := formatter.WriteExport(format, r.heading(ctx, creds), movies, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("catalog exported", "format", format, "path", path, "count", len(movies))
	return r.writePlain("✓ Exported %d movies to %s\n", len(movies), path)
}
