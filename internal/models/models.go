// package models defines the data model for the watchlist web application
package models

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/desertthunder/watchlist/internal/shared"
)

const (
	TitleMaxLength = 60 // TitleMaxLength is the maximum number of characters in a movie title
	YearLength     = 4  // YearLength is the length of a release year
	NameMaxLength  = 20 // NameMaxLength is the maximum number of characters in a display name
	DefaultName    = "Admin"
)

// Model defines the base interface for all persistent models.
type Model interface {
	PrimaryKey() int64 // PrimaryKey returns the surrogate key, zero before creation
	Validate() error   // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(ctx context.Context, model T) error    // Create inserts a new model and assigns its key
	Get(ctx context.Context, id int64) (T, error) // Get retrieves a model by its key
	Update(ctx context.Context, model T) error    // Update overwrites an existing model
	Delete(ctx context.Context, id int64) error   // Delete permanently removes a model by its key
	List(ctx context.Context) ([]T, error)        // List retrieves all models in insertion order
}

// Identity is the single administrative account.
type Identity struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
}

// Movie is one catalog entry.
type Movie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  string `json:"year"`
}

var (
	_ Model = (*Identity)(nil)
	_ Model = (*Movie)(nil)
)

// NewIdentity creates an [Identity] with the default display name.
func NewIdentity(username string) *Identity {
	return &Identity{Name: DefaultName, Username: username}
}

func (i *Identity) PrimaryKey() int64 { return i.ID }

// Validate checks the stored shape of an identity. A password hash is required so
// an identity is never persisted without credentials.
func (i *Identity) Validate() error {
	if err := ValidateName(i.Name); err != nil {
		return err
	}
	if strings.TrimSpace(i.Username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrValidation)
	}
	if i.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", shared.ErrValidation)
	}
	return nil
}

// NewMovie creates an unsaved [Movie].
func NewMovie(title, year string) *Movie {
	return &Movie{Title: title, Year: year}
}

func (m *Movie) PrimaryKey() int64 { return m.ID }

// Validate applies the creation rules to the movie's current fields.
func (m *Movie) Validate() error {
	return ValidateNewMovie(m.Title, m.Year)
}

// ValidateName checks a display name: required, at most [NameMaxLength] characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return fmt.Errorf("%w: name must be at most %d characters", shared.ErrValidation, NameMaxLength)
	}
	return nil
}

// ValidateTitle checks a movie title: required, at most [TitleMaxLength] characters.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	if utf8.RuneCountInString(title) > TitleMaxLength {
		return fmt.Errorf("%w: title must be at most %d characters", shared.ErrValidation, TitleMaxLength)
	}
	return nil
}

// ValidateNewMovie checks the fields submitted when creating a movie.
// The year is required and may be at most [YearLength] characters.
func ValidateNewMovie(title, year string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if year == "" {
		return fmt.Errorf("%w: year is required", shared.ErrValidation)
	}
	if utf8.RuneCountInString(year) > YearLength {
		return fmt.Errorf("%w: year must be at most %d characters", shared.ErrValidation, YearLength)
	}
	return nil
}

// ValidateMovieEdit checks the fields submitted when editing a movie.
// Unlike creation, the year must be exactly [YearLength] characters.
func ValidateMovieEdit(title, year string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if utf8.RuneCountInString(year) != YearLength {
		return fmt.Errorf("%w: year must be exactly %d characters", shared.ErrValidation, YearLength)
	}
	return nil
}
