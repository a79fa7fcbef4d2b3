package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "flash"

// readFlashes decodes pending messages from the request. A malformed cookie yields none.
func readFlashes(r *http.Request) []string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}

// flash queues message for the next rendered page, keeping any still pending.
func flash(w http.ResponseWriter, r *http.Request, message string) {
	data, err := json.Marshal(append(readFlashes(r), message))
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns pending messages and expires the cookie.
func popFlashes(w http.ResponseWriter, r *http.Request) []string {
	messages := readFlashes(r)
	if _, err := r.Cookie(flashCookie); err == nil {
		http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})
	}
	return messages
}
