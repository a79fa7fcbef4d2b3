package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/watchlist/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie *models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string { return fmt.Sprintf("%s • #%d", i.movie.Year, i.movie.ID) }

func movieItems(movies []*models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie}
	}
	return items
}
