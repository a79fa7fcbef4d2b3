// Package web serves the watchlist HTML application.
//
// Pages are rendered server side with [html/template]. Every request passes through [App.session],
// which resolves the session cookie into an [auth.Caller]; handlers hand that caller to the catalog
// and credential stores, which decide whether a write is allowed.
//
// Routes
//
//	GET  /                  movie list, add form when logged in
//	POST /                  create movie
//	GET  /movie/edit/{id}   edit form
//	POST /movie/edit/{id}   submit edit
//	POST /movie/delete/{id} delete movie
//	GET  /login             login form
//	POST /login             authenticate
//	GET  /logout            end session
//	GET  /setting           display name form
//	POST /setting           change display name
//	GET  /healthz           liveness probe
//
// Outcomes are reported with one-shot flash messages carried in a cookie across the redirect.
package web

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/catalog"
	"github.com/desertthunder/watchlist/internal/server"
	"github.com/desertthunder/watchlist/internal/shared"
)

// SiteName is shown in page headers when no administrator has been set up.
const SiteName = "Watchlist"

// Flash messages.
const (
	MsgCreated         = "Item created."
	MsgUpdated         = "Item updated."
	MsgDeleted         = "Item deleted."
	MsgInvalidInput    = "Invalid input."
	MsgLoginSuccess    = "Login success."
	MsgInvalidLogin    = "Invalid username or password."
	MsgTooManyAttempts = "Too many login attempts, try again later."
	MsgGoodbye         = "Goodbye."
	MsgSettingsUpdated = "Settings updated."
)

// App wires the stores and the session gate to HTTP handlers.
type App struct {
	gate    *auth.Gate
	creds   *auth.Credentials
	catalog *catalog.Store
	session shared.SessionConfig
	pages   *renderer
	logger  *log.Logger
}

// Options configures [NewApp].
type Options struct {
	Gate        *auth.Gate
	Credentials *auth.Credentials
	Catalog     *catalog.Store
	Session     shared.SessionConfig
	Logger      *log.Logger
}

// NewApp creates an App. Templates are parsed eagerly so a broken template fails at startup.
func NewApp(opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Session.CookieName == "" {
		opts.Session.CookieName = "session"
	}

	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &App{
		gate:    opts.Gate,
		creds:   opts.Credentials,
		catalog: opts.Catalog,
		session: opts.Session,
		pages:   pages,
		logger:  opts.Logger,
	}, nil
}

// Handler builds the router with middleware and every route registered.
func (a *App) Handler() http.Handler {
	router := server.NewBasicRouter()
	router.Use(server.RequestID, server.Logger(a.logger), server.Recoverer(a.logger), a.resolveSession)

	router.Handle(http.MethodGet, "/", http.HandlerFunc(a.index))
	router.Handle(http.MethodPost, "/", http.HandlerFunc(a.createMovie))
	router.Handle(http.MethodGet, "/movie/edit/{id}", http.HandlerFunc(a.editForm))
	router.Handle(http.MethodPost, "/movie/edit/{id}", http.HandlerFunc(a.updateMovie))
	router.Handle(http.MethodPost, "/movie/delete/{id}", http.HandlerFunc(a.deleteMovie))
	router.Handle(http.MethodGet, "/login", http.HandlerFunc(a.loginForm))
	router.Handle(http.MethodPost, "/login", http.HandlerFunc(a.login))
	router.Handle(http.MethodGet, "/logout", http.HandlerFunc(a.logout))
	router.Handle(http.MethodGet, "/setting", http.HandlerFunc(a.settingsForm))
	router.Handle(http.MethodPost, "/setting", http.HandlerFunc(a.updateSettings))
	router.Handler(server.HealthHandler{})
	router.NotFound(http.HandlerFunc(a.notFound))

	return router
}
