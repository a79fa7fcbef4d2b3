// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// NewTestDB creates a migrated in-memory SQLite database that is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.MemoryDatabase)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// InsertMovies writes movies straight to the movies table and sets their IDs.
func InsertMovies(t *testing.T, db *sql.DB, movies ...*models.Movie) {
	t.Helper()

	for _, movie := range movies {
		result, err := db.Exec(`INSERT INTO movies (title, year) VALUES (?, ?)`, movie.Title, movie.Year)
		if err != nil {
			t.Fatalf("failed to insert movie %q: %v", movie.Title, err)
		}
		if movie.ID, err = result.LastInsertId(); err != nil {
			t.Fatalf("failed to read movie id: %v", err)
		}
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
