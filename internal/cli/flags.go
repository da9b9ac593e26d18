package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookiejar/pkg/cookie"
)

const defaultConfigPath = "cookiejar.yaml"

var (
	globalFlags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: defaultConfigPath, Usage: "YAML config file, skipped when missing"},
		cli.StringFlag{Name: "backend, b", Usage: "memory, file, sqlite, postgres or redis"},
		cli.StringFlag{Name: "file, f", Usage: "cookies.txt path for the file backend"},
		cli.StringFlag{Name: "host", Usage: "host name the jar is bound to"},
		cli.StringFlag{Name: "namespace", Usage: "jar name inside a shared SQL table"},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	}

	rawFlag    = cli.BoolFlag{Name: "raw, r", Usage: "do not percent-encode or decode values"}
	domainFlag = cli.StringFlag{Name: "domain", Usage: "domain attribute"}
	pathFlag   = cli.StringFlag{Name: "path", Usage: "path attribute"}

	entryFlags = []cli.Flag{
		cli.IntFlag{Name: "days, d", Usage: "expire after N days"},
		cli.StringFlag{Name: "expires, e", Usage: "expire at an RFC 3339 time"},
		domainFlag,
		pathFlag,
		cli.BoolFlag{Name: "secure, s", Usage: "add the secure flag"},
		rawFlag,
	}
)

// entryOptions maps the entry flags of a command to cookie options.
func entryOptions(c *cli.Context) ([]cookie.Option, error) {
	var opts []cookie.Option

	if c.IsSet("days") && c.IsSet("expires") {
		return nil, fmt.Errorf("%w: --days and --expires are exclusive", errUsage)
	}
	if c.IsSet("days") {
		opts = append(opts, cookie.WithExpiresIn(c.Int("days")))
	}
	if v := c.String("expires"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("%w: --expires: %w", errUsage, err)
		}
		opts = append(opts, cookie.WithExpiresAt(t))
	}

	opts = append(opts, locationOptions(c)...)
	opts = append(opts,
		cookie.WithSecure(c.Bool("secure")),
		cookie.WithRaw(c.Bool("raw")),
	)
	return opts, nil
}

func locationOptions(c *cli.Context) []cookie.Option {
	var opts []cookie.Option
	if v := c.String("domain"); v != "" {
		opts = append(opts, cookie.WithDomain(v))
	}
	if v := c.String("path"); v != "" {
		opts = append(opts, cookie.WithPath(v))
	}
	return opts
}
