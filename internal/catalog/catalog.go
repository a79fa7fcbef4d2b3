// Package catalog is the movie catalog: field validation, authorization of writes and
// durable commits on top of a [Repository].
//
// Every write takes the resolved [auth.Caller] explicitly. Anonymous callers are refused with
// [shared.ErrUnauthorized] before validation or lookup, so a refused write never touches storage.
// Creation allows a year of up to four characters; edits require exactly four.
package catalog

import (
	"context"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/models"
)

// Repository is the persistence the catalog needs.
//
// Implemented by [repositories.MovieRepository].
type Repository interface {
	models.Repository[*models.Movie]
	CreateAll(ctx context.Context, movies []*models.Movie) error
}

// Store is the movie catalog.
type Store struct {
	repo Repository
}

// NewStore creates a catalog backed by repo.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// List returns every movie in insertion order. Each call returns a fresh slice.
func (s *Store) List(ctx context.Context) ([]*models.Movie, error) {
	return s.repo.List(ctx)
}

// Get returns the movie with id or [shared.ErrNotFound].
func (s *Store) Get(ctx context.Context, id int64) (*models.Movie, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new movie.
func (s *Store) Create(ctx context.Context, caller auth.Caller, title, year string) (*models.Movie, error) {
	if err := auth.Authorize(caller); err != nil {
		return nil, err
	}

	if err := models.ValidateNewMovie(title, year); err != nil {
		return nil, err
	}

	movie := models.NewMovie(title, year)
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// Update overwrites the title and year of an existing movie.
func (s *Store) Update(ctx context.Context, caller auth.Caller, id int64, title, year string) (*models.Movie, error) {
	if err := auth.Authorize(caller); err != nil {
		return nil, err
	}

	movie, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := models.ValidateMovieEdit(title, year); err != nil {
		return nil, err
	}

	movie.Title, movie.Year = title, year
	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// Delete permanently removes a movie.
func (s *Store) Delete(ctx context.Context, caller auth.Caller, id int64) error {
	if err := auth.Authorize(caller); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// Seed validates and inserts movies in one transaction. It is an administrative operation
// run from the command line and is not subject to the session gate.
func (s *Store) Seed(ctx context.Context, movies []*models.Movie) error {
	for _, movie := range movies {
		if err := movie.Validate(); err != nil {
			return err
		}
	}
	return s.repo.CreateAll(ctx, movies)
}

// SampleMovies returns the demo catalog used by the forge command.
func SampleMovies() []*models.Movie {
	return []*models.Movie{
		models.NewMovie("My Neighbor Totoro", "1988"),
		models.NewMovie("Dead Poets Society", "1989"),
		models.NewMovie("A Perfect World", "1993"),
		models.NewMovie("Leon", "1994"),
		models.NewMovie("Mahjong", "1996"),
		models.NewMovie("Swallowtail Butterfly", "1996"),
		models.NewMovie("King of Comedy", "1999"),
		models.NewMovie("Devils on the Doorstep", "1999"),
		models.NewMovie("WALL-E", "2008"),
		models.NewMovie("The Pork of Music", "2012"),
	}
}
