package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

// Option configures the CLI application.
type Option func(*options)

type options struct {
	ctx     context.Context
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
	environ []string
}

// WithFs sets the filesystem for the config file and the file backend.
// Default: the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(environ []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// WithOutput sets where command output and logs are written.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithContext sets the base context of every command.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// New builds the cookiejar command line application.
func New(version string, opts ...Option) *cli.App {
	o := &options{
		ctx:     context.Background(),
		fs:      afero.NewOsFs(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ(),
	}
	for _, opt := range opts {
		opt(o)
	}

	s := &session{opts: o}

	app := cli.NewApp()
	app.Name = "cookiejar"
	app.HelpName = "cookiejar"
	app.Usage = "read and write cookie jars"
	app.UsageText = "cookiejar [global options] <command> [arguments...]"
	app.Version = version
	app.Writer = o.stdout
	app.ErrWriter = o.stderr
	app.Flags = globalFlags
	app.Before = s.setup
	app.After = s.close
	app.Commands = []cli.Command{
		{
			Name:      "get",
			Usage:     "print the value of an entry",
			ArgsUsage: "NAME",
			Flags:     []cli.Flag{rawFlag},
			Action:    s.get,
		},
		{
			Name:      "set",
			Usage:     "write an entry and print the serialized form",
			ArgsUsage: "NAME VALUE",
			Flags:     entryFlags,
			Action:    s.set,
		},
		{
			Name:      "rm",
			Aliases:   []string{"remove"},
			Usage:     "expire an entry",
			ArgsUsage: "NAME",
			Flags:     []cli.Flag{domainFlag, pathFlag},
			Action:    s.remove,
		},
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "print all entries",
			Flags:   []cli.Flag{rawFlag},
			Action:  s.list,
		},
		{
			Name:      "parse",
			Usage:     "parse a raw cookie string without touching the jar",
			ArgsUsage: "RAW",
			Flags:     []cli.Flag{rawFlag},
			Action:    parse,
		},
		{
			Name:      "entry",
			Usage:     "serialize an entry without touching the jar",
			ArgsUsage: "NAME VALUE",
			Flags:     entryFlags,
			Action:    entry,
		},
		{
			Name:   "ping",
			Usage:  "check that the backend is reachable",
			Action: s.ping,
		},
		{
			Name:   "serve",
			Usage:  "run the HTTP inspection server",
			Flags:  []cli.Flag{cli.StringFlag{Name: "addr", Usage: "listen address (default from config)"}},
			Action: s.serve,
		},
	}

	return app
}
