package jar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiejar/pkg/jar"
)

func TestHTTP(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newRequest := func(cookies ...string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			r.Header.Add("Cookie", c)
		}
		return r
	}

	t.Run("reads request cookies", func(t *testing.T) {
		t.Parallel()

		j := jar.NewHTTP(httptest.NewRecorder(), newRequest("a=1; b=2", "c=3"))

		raw, err := j.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, "a=1; b=2; c=3", raw)
	})

	t.Run("write adds Set-Cookie", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		j := jar.NewHTTP(w, newRequest())

		require.NoError(t, j.Write(ctx, "a=1; path=/"))
		require.NoError(t, j.Write(ctx, "b=2"))

		require.Equal(t, []string{"a=1; path=/", "b=2"}, w.Header().Values("Set-Cookie"))
	})

	t.Run("writes overlay the request", func(t *testing.T) {
		t.Parallel()

		j := jar.NewHTTP(httptest.NewRecorder(), newRequest("a=1; b=2; flag"))

		require.NoError(t, j.Write(ctx, "a=9"))
		require.NoError(t, j.Write(ctx, "c=3"))
		require.NoError(t, j.Write(ctx, "b=; expires=Thu, 01 Jan 1970 00:00:00 GMT"))

		raw, err := j.Read(ctx)
		require.NoError(t, err)
		require.Equal(t, "flag; a=9; c=3", raw)
	})

	t.Run("rejects empty entry", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		err := jar.NewHTTP(w, newRequest()).Write(ctx, "")
		require.ErrorIs(t, err, jar.ErrInvalidEntry)
		require.Empty(t, w.Header().Values("Set-Cookie"))
	})
}
