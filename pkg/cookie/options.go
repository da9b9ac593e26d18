package cookie

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/cookiejar/pkg/logger"
)

type expiryKind uint8

const (
	expiryNone expiryKind = iota
	expiryRelative
	expiryAbsolute
)

// Expiry is the expiration attribute of a write.
// The zero value means no expires clause (a session entry).
type Expiry struct {
	at   time.Time
	days int
	kind expiryKind
}

// ExpiresIn returns an expiry the given number of calendar days from the
// moment of the write. Negative values point to the past.
func ExpiresIn(days int) Expiry {
	return Expiry{days: days, kind: expiryRelative}
}

// ExpiresAt returns an absolute expiry. A zero time yields no clause.
func ExpiresAt(t time.Time) Expiry {
	return Expiry{at: t, kind: expiryAbsolute}
}

// Resolve returns the absolute expiration relative to now.
// It reports false when there is nothing to render.
func (e Expiry) Resolve(now time.Time) (time.Time, bool) {
	switch e.kind {
	case expiryRelative:
		return now.AddDate(0, 0, e.days), true
	case expiryAbsolute:
		return e.at, !e.at.IsZero()
	default:
		return time.Time{}, false
	}
}

// Options holds per-call attributes for Get, Set and Remove.
// Get only looks at Raw.
type Options struct {
	Expires Expiry
	Domain  string
	Path    string
	Secure  bool
	Raw     bool
}

// Option configures a single call.
type Option func(*Options)

// WithExpiresIn sets an expiry the given number of days from now.
func WithExpiresIn(days int) Option {
	return func(o *Options) {
		o.Expires = ExpiresIn(days)
	}
}

// WithExpiresAt sets an absolute expiry.
func WithExpiresAt(t time.Time) Option {
	return func(o *Options) {
		o.Expires = ExpiresAt(t)
	}
}

// WithDomain sets the domain attribute.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithPath sets the path attribute.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithSecure sets the secure flag.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithRaw disables percent-encoding of values on write and decoding on read.
func WithRaw(raw bool) Option {
	return func(o *Options) {
		o.Raw = raw
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used for debug output.
// Values are never logged.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock replaces time.Now for relative expiries.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

func defaultClient(j Jar) *Client {
	return &Client{
		jar: j,
		log: logger.NewNope(),
		now: time.Now,
	}
}
