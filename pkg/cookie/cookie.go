package cookie

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Jar is the host store a Client reads from and writes to.
//
// Read returns the accumulated raw entry string. Write stores exactly one
// serialized entry; merging with existing entries is up to the host.
type Jar interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, entry string) error
}

// Client reads and writes entries of a single jar.
// It holds no parsed state: every call reads the jar again.
type Client struct {
	jar Jar
	log *slog.Logger
	now func() time.Time
}

// New creates a Client over the given jar.
func New(j Jar, opts ...ClientOption) *Client {
	c := defaultClient(j)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under name and whether it exists.
// Values are percent-decoded unless WithRaw(true) is passed.
// Returns ErrInvalidArgument for an empty name without reading the jar.
func (c *Client) Get(ctx context.Context, name string, opts ...Option) (string, bool, error) {
	if err := validateName(name); err != nil {
		return "", false, err
	}

	entries, err := c.read(ctx, buildOptions(opts))
	if err != nil {
		return "", false, err
	}

	v, ok := entries[name]
	return v, ok, nil
}

// All returns every entry of the jar as a name to value map.
func (c *Client) All(ctx context.Context, opts ...Option) (map[string]string, error) {
	return c.read(ctx, buildOptions(opts))
}

// Set writes name=value with the given attributes and returns the entry
// string that was written.
func (c *Client) Set(ctx context.Context, name string, value any, opts ...Option) (string, error) {
	return c.set(ctx, name, value, buildOptions(opts))
}

// Remove expires name by writing an empty value with an expiry at the Unix
// epoch. Domain and path must match the ones used when the entry was set.
func (c *Client) Remove(ctx context.Context, name string, opts ...Option) (string, error) {
	o := buildOptions(opts)
	o.Expires = ExpiresAt(time.Unix(0, 0))
	return c.set(ctx, name, "", o)
}

func (c *Client) set(ctx context.Context, name string, value any, o Options) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if c.jar == nil {
		return "", ErrNilJar
	}

	entry, err := buildEntry(name, value, o, c.now())
	if err != nil {
		return "", err
	}
	if err := c.jar.Write(ctx, entry); err != nil {
		return "", err
	}

	c.log.DebugContext(ctx, "cookie written",
		slog.String("name", name),
		slog.Bool("raw", o.Raw),
		slog.String("domain", o.Domain),
		slog.String("path", o.Path),
	)
	return entry, nil
}

func (c *Client) read(ctx context.Context, o Options) (map[string]string, error) {
	if c.jar == nil {
		return nil, ErrNilJar
	}

	raw, err := c.jar.Read(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	scan(raw, !o.Raw,
		func(e Entry) { out[e.Name] = e.Value },
		func(_ string, err error) {
			c.log.DebugContext(ctx, "skipping malformed cookie entry", slog.String("error", err.Error()))
		},
	)
	return out, nil
}

// Converter turns a looked-up value into T. ok is false when the name is
// absent from the jar.
type Converter[T any] func(value string, ok bool) (T, error)

// GetAs looks up name like Client.Get and passes the result through conv.
// The converter is called for absent names too, with ok set to false.
// Converter errors are returned joined with ErrConvert.
func GetAs[T any](ctx context.Context, c *Client, name string, conv Converter[T], opts ...Option) (T, error) {
	var zero T

	v, ok, err := c.Get(ctx, name, opts...)
	if err != nil {
		return zero, err
	}
	if conv == nil {
		return zero, errors.Join(ErrConvert, errors.New("cookie: nil converter"))
	}

	out, err := conv(v, ok)
	if err != nil {
		return zero, errors.Join(ErrConvert, err)
	}
	return out, nil
}
