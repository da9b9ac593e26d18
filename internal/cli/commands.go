package cli

import (
	"fmt"
	"io"
	"os/signal"
	"slices"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookiejar/internal/server"
	"github.com/dmitrymomot/cookiejar/pkg/cookie"
	"github.com/dmitrymomot/cookiejar/pkg/health"
)

func (s *session) client() (*cookie.Client, error) {
	j, err := s.open()
	if err != nil {
		return nil, err
	}
	return cookie.New(j, cookie.WithLogger(s.log)), nil
}

func (s *session) get(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: get NAME", errUsage)
	}
	cl, err := s.client()
	if err != nil {
		return err
	}

	name := c.Args().First()
	value, ok, err := cl.Get(s.ctx, name, cookie.WithRaw(c.Bool("raw")))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", errNotFound, name)
	}
	_, err = fmt.Fprintln(s.opts.stdout, value)
	return err
}

func (s *session) set(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("%w: set NAME VALUE", errUsage)
	}
	opts, err := entryOptions(c)
	if err != nil {
		return err
	}
	cl, err := s.client()
	if err != nil {
		return err
	}

	written, err := cl.Set(s.ctx, c.Args().Get(0), c.Args().Get(1), opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.opts.stdout, written)
	return err
}

func (s *session) remove(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: rm NAME", errUsage)
	}
	cl, err := s.client()
	if err != nil {
		return err
	}

	written, err := cl.Remove(s.ctx, c.Args().First(), locationOptions(c)...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.opts.stdout, written)
	return err
}

func (s *session) list(c *cli.Context) error {
	cl, err := s.client()
	if err != nil {
		return err
	}

	all, err := cl.All(s.ctx, cookie.WithRaw(c.Bool("raw")))
	if err != nil {
		return err
	}
	return printEntries(s.opts.stdout, all)
}

func parse(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: parse RAW", errUsage)
	}
	return printEntries(c.App.Writer, cookie.Parse(c.Args().First(), !c.Bool("raw")))
}

func entry(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("%w: entry NAME VALUE", errUsage)
	}
	opts, err := entryOptions(c)
	if err != nil {
		return err
	}

	built, err := cookie.BuildEntry(c.Args().Get(0), c.Args().Get(1), opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, built)
	return err
}

func (s *session) ping(*cli.Context) error {
	if _, err := s.open(); err != nil {
		return err
	}

	resp := health.Run(s.ctx, s.checks, health.WithLogger(s.log))

	lines := make(map[string]string, len(resp.Checks))
	for name, check := range resp.Checks {
		lines[name] = check.Status
		if check.Error != "" {
			lines[name] += ": " + check.Error
		}
	}
	if err := printEntries(s.opts.stdout, lines); err != nil {
		return err
	}
	return resp.Err()
}

func (s *session) serve(c *cli.Context) error {
	j, err := s.open()
	if err != nil {
		return err
	}

	addr := s.cfg.Addr
	if v := c.String("addr"); v != "" {
		addr = v
	}

	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, addr, server.NewRouter(j, s.log, s.checks), s.log)
}

// printEntries writes one "name  value" line per entry, sorted by name,
// with values aligned in display columns.
func printEntries(w io.Writer, entries map[string]string) error {
	names := make([]string, 0, len(entries))
	width := 0
	for name := range entries {
		names = append(names, name)
		width = max(width, runewidth.StringWidth(name))
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(name, width), entries[name]); err != nil {
			return err
		}
	}
	return nil
}
