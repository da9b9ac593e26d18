package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiejar/middlewares"
	"github.com/dmitrymomot/cookiejar/pkg/cookie"
)

func TestCookies(t *testing.T) {
	t.Parallel()

	t.Run("reads request cookies", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.Use(middlewares.Cookies())
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			value, ok, err := middlewares.CookiesFrom(r.Context()).Get(r.Context(), "greeting")
			require.NoError(t, err)
			require.True(t, ok)
			_, _ = w.Write([]byte(value))
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Cookie", "greeting=hello%20world")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "hello world", rec.Body.String())
	})

	t.Run("set writes header and is visible in the same request", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.Use(middlewares.Cookies())
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			c := middlewares.CookiesFrom(r.Context())
			_, err := c.Set(r.Context(), "theme", "dark", cookie.WithPath("/"))
			require.NoError(t, err)
			_, err = c.Remove(r.Context(), "old")
			require.NoError(t, err)

			all, err := c.All(r.Context())
			require.NoError(t, err)
			require.Equal(t, map[string]string{"keep": "1", "theme": "dark"}, all)
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Cookie", "keep=1; old=2")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, []string{
			"theme=dark; path=/",
			"old=; expires=Thu, 01 Jan 1970 00:00:00 GMT",
		}, rec.Header().Values("Set-Cookie"))
	})

	t.Run("nil without middleware", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.Nil(t, middlewares.CookiesFrom(req.Context()))
	})
}
