package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/desertthunder/watchlist/internal/auth"
	"github.com/desertthunder/watchlist/internal/shared"
)

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	movies, err := a.catalog.List(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	a.render(w, r, http.StatusOK, "index", page{Movies: movies})
}

func (a *App) createMovie(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	title := r.PostFormValue("title")
	year := r.PostFormValue("year")

	movie, err := a.catalog.Create(r.Context(), caller, title, year)
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, shared.ErrValidation):
		flash(w, r, MsgInvalidInput)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}

	a.logger.Info("movie created", "id", movie.ID)
	flash(w, r, MsgCreated)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) editForm(w http.ResponseWriter, r *http.Request) {
	if requireLogin(w, r) {
		return
	}

	id, ok := movieID(r)
	if !ok {
		a.notFound(w, r)
		return
	}

	movie, err := a.catalog.Get(r.Context(), id)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, http.StatusOK, "edit", page{Movie: movie})
}

func (a *App) updateMovie(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, ok := movieID(r)
	if !ok {
		if !caller.Authenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		a.notFound(w, r)
		return
	}

	title := r.PostFormValue("title")
	year := r.PostFormValue("year")

	_, err := a.catalog.Update(r.Context(), caller, id, title, year)
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
		return
	case errors.Is(err, shared.ErrValidation):
		flash(w, r, MsgInvalidInput)
		http.Redirect(w, r, "/movie/edit/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}

	a.logger.Info("movie updated", "id", id)
	flash(w, r, MsgUpdated)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) deleteMovie(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, ok := movieID(r)
	if !ok {
		if !caller.Authenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		a.notFound(w, r)
		return
	}

	err := a.catalog.Delete(r.Context(), caller, id)
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}

	a.logger.Info("movie deleted", "id", id)
	flash(w, r, MsgDeleted)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) loginForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "login", page{})
}

// login authenticates the form credentials. A failed attempt also ends any existing session.
func (a *App) login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	_, token, err := a.gate.Login(r.Context(), username, password)
	if err != nil {
		a.clearSessionCookie(w)
	}

	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		flash(w, r, MsgInvalidInput)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, shared.ErrInvalidLogin):
		flash(w, r, MsgInvalidLogin)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, shared.ErrTooManyAttempts):
		flash(w, r, MsgTooManyAttempts)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}

	a.setSessionCookie(w, token)
	flash(w, r, MsgLoginSuccess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if requireLogin(w, r) {
		return
	}

	a.gate.Logout()
	a.clearSessionCookie(w)
	flash(w, r, MsgGoodbye)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) settingsForm(w http.ResponseWriter, r *http.Request) {
	if requireLogin(w, r) {
		return
	}

	name := ""
	if identity := auth.CallerFrom(r.Context()).Identity(); identity != nil {
		name = identity.Name
	}
	a.render(w, r, http.StatusOK, "settings", page{Name: name})
}

func (a *App) updateSettings(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	name := r.PostFormValue("name")

	_, err := a.creds.UpdateDisplayName(r.Context(), caller, name)
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, shared.ErrValidation):
		flash(w, r, MsgInvalidInput)
		http.Redirect(w, r, "/setting", http.StatusSeeOther)
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}

	flash(w, r, MsgSettingsUpdated)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusNotFound, "404", page{})
}

func movieID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}
