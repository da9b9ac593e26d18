package jar

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/dmitrymomot/cookiejar/pkg/cookie"
	"github.com/dmitrymomot/cookiejar/pkg/logger"
)

// Store persists records for a Jar.
//
// Load returns records in creation order. Save inserts a record or replaces
// the one with the same key, keeping the creation time of the replaced one.
// Delete of a missing key is not an error.
type Store interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context, key Key) error
}

// Jar applies browser-like cookie store rules on top of a Store and
// implements cookie.Jar.
type Jar struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
	host  string
	mu    sync.Mutex
}

// Option configures a Jar.
type Option func(*Jar)

// WithHost binds the jar to a host name. Reads then only return records
// visible to that host and writes may only set a domain the host belongs to.
func WithHost(host string) Option {
	return func(j *Jar) {
		j.host = strings.ToLower(strings.TrimSuffix(host, "."))
	}
}

// WithLogger sets the logger for rejected writes and evictions.
func WithLogger(log *slog.Logger) Option {
	return func(j *Jar) {
		if log != nil {
			j.log = log
		}
	}
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *Jar) {
		if now != nil {
			j.now = now
		}
	}
}

// New creates a Jar over store.
func New(store Store, opts ...Option) *Jar {
	j := &Jar{
		store: store,
		log:   logger.NewNope(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Read returns the visible, unexpired records as "a=1; b=2".
// Expired records found on the way are deleted from the store.
func (j *Jar) Read(ctx context.Context) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	records, err := j.store.Load(ctx)
	if err != nil {
		return "", errors.Join(ErrStore, err)
	}

	now := j.now()
	visible := records[:0:0]
	for _, r := range records {
		if r.Expired(now) {
			if err := j.store.Delete(ctx, r.Key()); err != nil {
				return "", errors.Join(ErrStore, err)
			}
			j.log.DebugContext(ctx, "evicted expired cookie", slog.String("name", r.Name))
			continue
		}
		if j.visible(r) {
			visible = append(visible, r)
		}
	}

	return render(visible), nil
}

// Write stores a single serialized entry. An entry that is already expired
// deletes the record with the same name, domain and path.
func (j *Jar) Write(ctx context.Context, entry string) error {
	now := j.now()

	rec, err := ParseEntry(entry, now)
	if err != nil {
		return err
	}
	if rec.Domain, err = j.checkDomain(rec.Domain); err != nil {
		j.log.WarnContext(ctx, "cookie write rejected",
			slog.String("name", rec.Name),
			slog.String("domain", rec.Domain),
		)
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if rec.Expired(now) {
		if err := j.store.Delete(ctx, rec.Key()); err != nil {
			return errors.Join(ErrStore, err)
		}
		return nil
	}

	rec.Created = now
	if err := j.store.Save(ctx, rec); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// checkDomain returns the domain to store. Public suffixes are rejected
// unless they equal the bound host, in which case the record is host-only.
func (j *Jar) checkDomain(domain string) (string, error) {
	if domain == "" {
		return "", nil
	}

	if ps, _ := publicsuffix.PublicSuffix(domain); ps == domain {
		if j.host == domain {
			return "", nil
		}
		return domain, ErrDomainRejected
	}
	if j.host != "" && !domainMatch(j.host, domain) {
		return domain, ErrDomainRejected
	}
	return domain, nil
}

func (j *Jar) visible(r Record) bool {
	return j.host == "" || r.Domain == "" || domainMatch(j.host, r.Domain)
}

// domainMatch reports whether host equals domain or is a subdomain of it.
func domainMatch(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

var _ cookie.Jar = (*Jar)(nil)
