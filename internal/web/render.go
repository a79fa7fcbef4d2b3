package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{"index", "edit", "login", "settings", "404"}

// page is the data every template receives.
type page struct {
	SiteName      string
	Flashes       []string
	Authenticated bool
	Movies        []*models.Movie
	Movie         *models.Movie
	Name          string
	TitleMax      int
	YearLength    int
	NameMax       int
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFiles, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &renderer{pages: pages}, nil
}

// render writes the named page with the shared header data filled in.
//
// Output is buffered so a template error still produces a clean 500.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	tmpl, ok := a.pages.pages[name]
	if !ok {
		a.serverError(w, r, fmt.Errorf("unknown page %q", name))
		return
	}

	data.SiteName = SiteName
	if identity := a.gate.Current(r.Context()); identity != nil {
		data.SiteName = identity.Name
	}
	data.Authenticated = auth.CallerFrom(r.Context()).Authenticated()
	data.Flashes = popFlashes(w, r)
	data.TitleMax = models.TitleMaxLength
	data.YearLength = models.YearLength
	data.NameMax = models.NameMaxLength

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		a.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (a *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
