package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MovieListView ViewState = iota
	DetailView
)

// Catalog is the read side of the movie catalog.
type Catalog interface {
	List(ctx context.Context) ([]*models.Movie, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	catalog   Catalog
	heading   string
	width     int
	height    int
	movieList list.Model
	movies    []*models.Movie
	selected  *models.Movie
	loaded    bool
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model that browses catalog under the given heading.
func NewModel(ctx context.Context, catalog Catalog, heading string) *Model {
	m := &Model{
		ctx:     ctx,
		view:    MovieListView,
		catalog: catalog,
		heading: heading,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.movieList = m.newList(nil)
	return m
}

// Init initializes the TUI by loading the catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// ViewState returns the current [ViewState].
func (m *Model) ViewState() ViewState { return m.view }

// Selected returns the movie shown in [DetailView], or nil.
func (m *Model) Selected() *models.Movie { return m.selected }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.movieList.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgMoviesFetched:
			data := msg.data.(moviesFetched)
			m.loaded = true
			m.err = data.err
			if data.err != nil {
				return m, nil
			}
			m.movies = data.movies
			return m, m.movieList.SetItems(movieItems(data.movies))
		}
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Error: %v", m.err)), helpView)
	}

	switch m.view {
	case MovieListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.movieList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.movieList, cmd = m.movieList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchMovies()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.movieList.SelectedItem().(movieItem); ok {
			m.selected = item.movie
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = MovieListView
		m.selected = nil
	}
	return m, nil
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.catalog.List(m.ctx)
		return moviesFetchedMsg(movies, err)
	}
}

func (m *Model) newList(items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = m.heading
	l.SetShowHelp(false)
	return l
}

func (m *Model) renderList() string {
	if !m.loaded {
		return styles.help.Render("Loading catalog...")
	}
	if len(m.movies) == 0 {
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.refresh, m.keys.quit})
		return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render(m.heading), styles.warn.Render("No movies yet."), helpView)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return ""
	}

	title := styles.title.Render(m.selected.Title)
	info := fmt.Sprintf("%s%s\n%s%d",
		styles.label.Render("Year"), styles.ok.Render(m.selected.Year),
		styles.label.Render("ID"), m.selected.ID,
	)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
