package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
)

var _ models.Repository[*models.Movie] = (*MovieRepository)(nil)

// MovieRepository implements [models.Repository] for [models.Movie] persistence.
//
// It stores whatever it is given; field rules are enforced by the catalog before calling it.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new [MovieRepository] with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a movie and sets its ID.
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		return insertMovie(ctx, tx, movie)
	})
}

// CreateAll inserts every movie in a single transaction; either all are stored or none.
func (r *MovieRepository) CreateAll(ctx context.Context, movies []*models.Movie) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		for _, movie := range movies {
			if err := insertMovie(ctx, tx, movie); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertMovie(ctx context.Context, tx DBTX, movie *models.Movie) error {
	result, err := tx.ExecContext(ctx, `INSERT INTO movies (title, year) VALUES (?, ?)`, movie.Title, movie.Year)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read movie id: %w", err)
	}

	movie.ID = id
	return nil
}

// Get retrieves a movie by ID
func (r *MovieRepository) Get(ctx context.Context, id int64) (*models.Movie, error) {
	movie := &models.Movie{}
	err := r.db.QueryRowContext(ctx, `SELECT id, title, year FROM movies WHERE id = ?`, id).
		Scan(&movie.ID, &movie.Title, &movie.Year)
	if err != nil {
		return nil, notFound(err, "movie", id)
	}
	return movie, nil
}

// Update overwrites the title and year of an existing movie.
func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		result, err := tx.ExecContext(ctx, `UPDATE movies SET title = ?, year = ? WHERE id = ?`, movie.Title, movie.Year, movie.ID)
		if err != nil {
			return fmt.Errorf("failed to update movie: %w", err)
		}
		return expectAffected(result, "movie", movie.ID)
	})
}

// Delete permanently removes a movie by ID
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete movie: %w", err)
		}
		return expectAffected(result, "movie", id)
	})
}

// List retrieves all movies in insertion order
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, year FROM movies ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []*models.Movie{}
	for rows.Next() {
		movie := &models.Movie{}
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Year); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Count returns the number of movies in the catalog.
func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}
