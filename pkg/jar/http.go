package jar

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/cookiejar/pkg/cookie"
)

// HTTP is a per-request jar. Read returns the request Cookie header with
// the entries written during the request applied on top, and Write adds a
// Set-Cookie header to the response.
type HTTP struct {
	w       http.ResponseWriter
	r       *http.Request
	now     func() time.Time
	pending []Record
	mu      sync.Mutex
}

// NewHTTP creates a jar for one request.
func NewHTTP(w http.ResponseWriter, r *http.Request) *HTTP {
	return &HTTP{w: w, r: r, now: time.Now}
}

func (h *HTTP) Read(_ context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	raw := strings.Join(h.r.Header.Values("Cookie"), "; ")
	if len(h.pending) == 0 {
		return raw, nil
	}

	written := make(map[string]bool, len(h.pending))
	for _, r := range h.pending {
		written[r.Name] = true
	}

	var out []Record
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			name, value = "", part
		}
		if written[strings.TrimSpace(name)] {
			continue
		}
		out = append(out, Record{Name: name, Value: value})
	}

	now := h.now()
	for _, r := range h.pending {
		if !r.Expired(now) {
			out = append(out, r)
		}
	}

	return render(out), nil
}

func (h *HTTP) Write(_ context.Context, entry string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, err := ParseEntry(entry, h.now())
	if err != nil {
		return err
	}

	h.w.Header().Add("Set-Cookie", entry)

	kept := h.pending[:0]
	for _, r := range h.pending {
		if r.Name != rec.Name {
			kept = append(kept, r)
		}
	}
	h.pending = append(kept, rec)
	return nil
}

var _ cookie.Jar = (*HTTP)(nil)
