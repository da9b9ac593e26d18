package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiejar/middlewares"
	"github.com/dmitrymomot/cookiejar/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	serve := func(mw func(http.Handler) http.Handler, req *http.Request) (*httptest.ResponseRecorder, string) {
		var captured string
		r := chi.NewRouter()
		r.Use(mw)
		r.Get("/", func(_ http.ResponseWriter, r *http.Request) {
			captured = middlewares.GetRequestID(r.Context())
		})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec, captured
	}

	t.Run("generates a UUID", func(t *testing.T) {
		t.Parallel()

		rec, id := serve(middlewares.RequestID(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, uuid.Validate(id))
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("reuses upstream header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "upstream-1")

		rec, id := serve(middlewares.RequestID(), req)
		require.Equal(t, "upstream-1", id)
		require.Equal(t, "upstream-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")

		mw := middlewares.RequestID(
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		)
		_, id := serve(mw, req)
		require.Equal(t, "fixed", id)
	})

	t.Run("extractor tags log records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.Config{Output: &buf, Format: "text"}, middlewares.RequestIDExtractor())

		r := chi.NewRouter()
		r.Use(middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "req-42" })))
		r.Get("/", func(_ http.ResponseWriter, r *http.Request) {
			log.InfoContext(r.Context(), "handled", slog.String("path", r.URL.Path))
		})
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Contains(t, buf.String(), "request_id=req-42")
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middlewares.Recover(log))
	r.Get("/", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, buf.String(), "panic recovered")
	require.Contains(t, buf.String(), "panic=boom")
}
