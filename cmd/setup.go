package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/catalog"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Setup creates a config file when none exists, then initializes the database and runs migrations.
//
// With --drop every migration is rolled back first, so all data is lost.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	if err := r.loadConfig(cmd); err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := r.database()
	if err != nil {
		return err
	}

	if cmd.Bool("drop") {
		r.logger.Warn("dropping all tables")
		if err := shared.ResetDatabase(db); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("Initialized database.\n")
	return nil
}

// Admin creates the administrator, or updates the existing one's username and password.
func (r *Runner) Admin(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	username := cmd.String("username")
	if username == "" {
		return fmt.Errorf("%w: --username", shared.ErrMissingArgument)
	}

	password := cmd.String("password")
	if password == "" {
		var err error
		if password, err = r.confirmPassword(); err != nil {
			return err
		}
	}

	creds, _, err := r.stores()
	if err != nil {
		return err
	}

	switch _, err := creds.Current(ctx); {
	case errors.Is(err, shared.ErrNotFound):
		r.writePlain("Creating user...\n")
	case err != nil:
		return err
	default:
		r.writePlain("Updating user...\n")
	}

	identity, err := creds.UpsertAdmin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("failed to save administrator: %w", err)
	}

	r.logger.Info("administrator saved", "id", identity.ID, "username", identity.Username)
	r.writePlain("Done.\n")
	return nil
}

func (r *Runner) confirmPassword() (string, error) {
	password, err := r.prompt("Password: ")
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", fmt.Errorf("%w: password cannot be empty", shared.ErrInvalidArgument)
	}

	confirm, err := r.prompt("Repeat for confirmation: ")
	if err != nil {
		return "", err
	}
	if confirm != password {
		return "", fmt.Errorf("%w: passwords do not match", shared.ErrInvalidArgument)
	}

	return password, nil
}

// terminalPrompt reads a password from stdin with echo disabled.
func terminalPrompt(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: --password is required when stdin is not a terminal", shared.ErrMissingArgument)
	}

	fmt.Fprint(os.Stderr, label)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}

// Forge seeds the catalog with sample movies and optionally renames the administrator.
func (r *Runner) Forge(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	creds, store, err := r.stores()
	if err != nil {
		return err
	}

	movies := catalog.SampleMovies()
	if err := store.Seed(ctx, movies); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	r.logger.Info("catalog seeded", "count", len(movies))

	if name := cmd.String("name"); name != "" {
		identity, err := creds.Current(ctx)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			r.logger.Warn("no administrator yet, skipping display name", "name", name)
		case err != nil:
			return err
		default:
			if _, err := creds.UpdateDisplayName(ctx, auth.AuthenticatedCaller(identity), name); err != nil {
				return fmt.Errorf("failed to set display name: %w", err)
			}
		}
	}

	r.writePlain("Done.\n")
	return nil
}
