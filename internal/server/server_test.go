package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body + r.PathValue("id")))
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("routes by method and path", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/", text("index"))
		router.Handle(http.MethodPost, "/", text("create"))
		router.Handle(http.MethodGet, "/movie/edit/{id}", text("edit-"))

		tc := []struct {
			method string
			path   string
			status int
			body   string
		}{
			{method: http.MethodGet, path: "/", status: http.StatusOK, body: "index"},
			{method: http.MethodPost, path: "/", status: http.StatusOK, body: "create"},
			{method: http.MethodGet, path: "/movie/edit/7", status: http.StatusOK, body: "edit-7"},
			{method: http.MethodDelete, path: "/movie/edit/7", status: http.StatusMethodNotAllowed},
			{method: http.MethodGet, path: "/nope", status: http.StatusNotFound},
		}

		for _, tt := range tc {
			t.Run(tt.method+" "+tt.path, func(t *testing.T) {
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

				assert.Equal(t, tt.status, rec.Code)
				if tt.body != "" {
					assert.Equal(t, tt.body, rec.Body.String())
				}
			})
		}
	})

	t.Run("not found fallback", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/", text("index"))
		router.NotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("custom 404"))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "custom 404", rec.Body.String())

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "index", rec.Body.String())
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handle(http.MethodGet, "/", text("index"))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("custom handler", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(HealthHandler{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("request id and logging", func(t *testing.T) {
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)

		var seen string
		handler := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFrom(r.Context())
			w.WriteHeader(http.StatusTeapot)
		})))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tea", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), "status=418")
		assert.Contains(t, buf.String(), "path=/tea")
		assert.Contains(t, buf.String(), seen)
	})

	t.Run("recoverer", func(t *testing.T) {
		var buf bytes.Buffer
		handler := Recoverer(shared.NewLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, strings.Contains(buf.String(), "boom"))
	})

	t.Run("request id outside middleware", func(t *testing.T) {
		assert.Empty(t, RequestIDFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
	})
}
