package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cookiejar/middlewares"
	"github.com/dmitrymomot/cookiejar/pkg/cookie"
	"github.com/dmitrymomot/cookiejar/pkg/jar"
)

const maxValueBytes = 4096

type handlers struct {
	stored *cookie.Client
	log    *slog.Logger
}

type entryResponse struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	Entry string `json:"entry,omitempty"`
}

func (h *handlers) echoList(w http.ResponseWriter, r *http.Request) {
	all, err := middlewares.CookiesFrom(r.Context()).All(r.Context(), queryOptions(r)...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *handlers) echoSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, err := middlewares.CookiesFrom(r.Context()).Set(r.Context(), name, r.URL.Query().Get("value"), queryOptions(r)...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Name: name, Entry: entry})
}

func (h *handlers) jarList(w http.ResponseWriter, r *http.Request) {
	all, err := h.stored.All(r.Context(), queryOptions(r)...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *handlers) jarGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value, ok, err := h.stored.Get(r.Context(), name, queryOptions(r)...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Name: name, Value: value})
}

func (h *handlers) jarSet(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxValueBytes+1))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(body) > maxValueBytes {
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}

	name := chi.URLParam(r, "name")
	entry, err := h.stored.Set(r.Context(), name, string(body), queryOptions(r)...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Name: name, Value: string(body), Entry: entry})
}

func (h *handlers) jarRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, err := h.stored.Remove(r.Context(), name, queryOptions(r)...)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{Name: name, Entry: entry})
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, cookie.ErrInvalidArgument),
		errors.Is(err, jar.ErrInvalidEntry),
		errors.Is(err, jar.ErrInvalidRecord),
		errors.Is(err, jar.ErrDomainRejected):
		status = http.StatusBadRequest
	default:
		h.log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	}
	http.Error(w, err.Error(), status)
}

// queryOptions maps days, expires (RFC 3339), domain, path, secure and raw
// query parameters to cookie options. Malformed numbers and times are
// ignored.
func queryOptions(r *http.Request) []cookie.Option {
	q := r.URL.Query()

	var opts []cookie.Option
	if v := q.Get("days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			opts = append(opts, cookie.WithExpiresIn(days))
		}
	}
	if v := q.Get("expires"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			opts = append(opts, cookie.WithExpiresAt(t))
		}
	}
	if v := q.Get("domain"); v != "" {
		opts = append(opts, cookie.WithDomain(v))
	}
	if v := q.Get("path"); v != "" {
		opts = append(opts, cookie.WithPath(v))
	}
	if v, err := strconv.ParseBool(q.Get("secure")); err == nil {
		opts = append(opts, cookie.WithSecure(v))
	}
	if v, err := strconv.ParseBool(q.Get("raw")); err == nil {
		opts = append(opts, cookie.WithRaw(v))
	}
	return opts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
