package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMoviesFetched MsgKind = iota
)

type moviesFetched struct {
	movies []*models.Movie
	err    error
}

// moviesFetchedMsg is the constructor for [MsgMoviesFetched]
func moviesFetchedMsg(movies []*models.Movie, err error) Msg {
	return Msg{kind: MsgMoviesFetched, data: moviesFetched{movies: movies, err: err}}
}
