// package formatter provides functions to export the movie catalog to various formats (CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatJSON}

// ParseFormat resolves a format name, accepting "markdown" as an alias for [FormatMarkdown].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want csv, md or json)", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ExportToCSV converts movies to CSV format with columns: ID, Title, Year
func ExportToCSV(movies []*models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Title", "Year"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{strconv.FormatInt(movie.ID, 10), movie.Title, movie.Year}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts movies to a numbered Markdown list under a heading
func ExportToMarkdown(heading string, movies []*models.Movie) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", heading)
	fmt.Fprintf(&buf, "**Titles**: %d\n\n", len(movies))

	for i, movie := range movies {
		fmt.Fprintf(&buf, "%d. %s (%s)\n", i+1, movie.Title, movie.Year)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts movies to an indented JSON array
func ExportToJSON(movies []*models.Movie) ([]byte, error) {
	if movies == nil {
		movies = []*models.Movie{}
	}
	return shared.MarshalJSON(movies, true)
}

// Export renders movies in the given format. The heading is only used by Markdown.
func Export(format Format, heading string, movies []*models.Movie) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(movies)
	case FormatMarkdown:
		return ExportToMarkdown(heading, movies)
	case FormatJSON:
		return ExportToJSON(movies)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport exports movies to a file and returns its path.
//
// Defaults to watchlist{ext} in the working directory.
func WriteExport(format Format, heading string, movies []*models.Movie, path string) (string, error) {
	if path == "" {
		path = "watchlist" + format.Extension()
	}

	data, err := Export(format, heading, movies)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
