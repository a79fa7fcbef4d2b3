package web

import (
	"net/http"

	"github.com/desertthunder/watchlist/internal/auth"
)

// resolveSession resolves the session cookie into an [auth.Caller] stored on the request context.
func (a *App) resolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := auth.AnonymousCaller()
		if cookie, err := r.Cookie(a.session.CookieName); err == nil {
			caller = a.gate.Resolve(r.Context(), cookie.Value)
		}
		next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), caller)))
	})
}

func (a *App) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   a.session.MaxAge,
		HttpOnly: true,
		Secure:   a.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *App) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireLogin redirects anonymous callers to the login page and reports whether it did.
func requireLogin(w http.ResponseWriter, r *http.Request) bool {
	if auth.CallerFrom(r.Context()).Authenticated() {
		return false
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}
