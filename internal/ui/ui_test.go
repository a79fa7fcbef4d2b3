package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlist/internal/models"
)

type stubCatalog struct {
	movies []*models.Movie
	err    error
	calls  int
}

func (s *stubCatalog) List(ctx context.Context) ([]*models.Movie, error) {
	s.calls++
	return s.movies, s.err
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T, catalog *stubCatalog) *Model {
	t.Helper()

	m := NewModel(context.Background(), catalog, "Admin")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.Update(m.Init()())
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel(t *testing.T) {
	movies := []*models.Movie{
		{ID: 1, Title: "My Neighbor Totoro", Year: "1988"},
		{ID: 2, Title: "Dead Poets Society", Year: "1989"},
	}

	t.Run("loading state", func(t *testing.T) {
		m := NewModel(context.Background(), &stubCatalog{}, "Admin")
		if !strings.Contains(m.View(), "Loading") {
			t.Errorf("expected loading view, got %q", m.View())
		}
	})

	t.Run("lists movies", func(t *testing.T) {
		m := loadedModel(t, &stubCatalog{movies: movies})

		view := m.View()
		if !strings.Contains(view, "My Neighbor Totoro") {
			t.Errorf("list view missing movie, got %q", view)
		}
		if m.ViewState() != MovieListView {
			t.Errorf("expected MovieListView, got %v", m.ViewState())
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		m := loadedModel(t, &stubCatalog{})

		if !strings.Contains(m.View(), "No movies yet.") {
			t.Errorf("expected empty notice, got %q", m.View())
		}
	})

	t.Run("enter opens details and esc returns", func(t *testing.T) {
		m := loadedModel(t, &stubCatalog{movies: movies})

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.ViewState() != DetailView {
			t.Fatalf("expected DetailView, got %v", m.ViewState())
		}
		if m.Selected() == nil || m.Selected().ID != 1 {
			t.Fatalf("expected first movie selected, got %+v", m.Selected())
		}
		if !strings.Contains(m.View(), "1988") {
			t.Errorf("detail view missing year, got %q", m.View())
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.ViewState() != MovieListView {
			t.Errorf("expected MovieListView after esc, got %v", m.ViewState())
		}
		if m.Selected() != nil {
			t.Errorf("expected selection cleared")
		}
	})

	t.Run("cursor moves before selecting", func(t *testing.T) {
		m := loadedModel(t, &stubCatalog{movies: movies})

		m.Update(keyRunes("j"))
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.Selected() == nil || m.Selected().ID != 2 {
			t.Errorf("expected second movie selected, got %+v", m.Selected())
		}
	})

	t.Run("refresh reloads", func(t *testing.T) {
		catalog := &stubCatalog{movies: movies}
		m := loadedModel(t, catalog)

		_, cmd := m.Update(keyRunes("r"))
		if cmd == nil {
			t.Fatal("expected refresh command")
		}
		m.Update(cmd())
		if catalog.calls != 2 {
			t.Errorf("expected 2 catalog loads, got %d", catalog.calls)
		}
	})

	t.Run("errors are shown", func(t *testing.T) {
		m := loadedModel(t, &stubCatalog{err: errors.New("database is locked")})

		if !strings.Contains(m.View(), "database is locked") {
			t.Errorf("expected error view, got %q", m.View())
		}
	})

	t.Run("quit", func(t *testing.T) {
		m := loadedModel(t, &stubCatalog{movies: movies})

		if _, cmd := m.Update(keyRunes("q")); !isQuit(cmd) {
			t.Error("expected q to quit from the list")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
			t.Error("expected ctrl+c to quit from details")
		}
	})
}
