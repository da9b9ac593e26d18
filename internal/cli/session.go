package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookiejar/internal/config"
	"github.com/dmitrymomot/cookiejar/middlewares"
	"github.com/dmitrymomot/cookiejar/pkg/db"
	"github.com/dmitrymomot/cookiejar/pkg/health"
	"github.com/dmitrymomot/cookiejar/pkg/jar"
	"github.com/dmitrymomot/cookiejar/pkg/logger"
	"github.com/dmitrymomot/cookiejar/pkg/redis"
)

var (
	errUsage    = errors.New("usage")
	errNotFound = errors.New("not found")
)

// session holds what one run of the application opened.
type session struct {
	opts    *options
	ctx     context.Context
	log     *slog.Logger
	jar     *jar.Jar
	checks  health.Checks
	closers []func(context.Context) error
	cfg     config.Config
}

func (s *session) setup(c *cli.Context) error {
	cfg, err := config.Load(s.opts.fs, c.String("config"), s.opts.environ)
	if err != nil && !errors.Is(err, config.ErrUnknownBackend) {
		return err
	}

	if v := c.String("backend"); v != "" {
		cfg.Backend = v
	}
	if v := c.String("file"); v != "" {
		cfg.File = v
	}
	if v := c.String("host"); v != "" {
		cfg.Host = v
	}
	if v := c.String("namespace"); v != "" {
		cfg.Namespace = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.Log.Output = s.opts.stderr
	s.cfg = cfg
	s.log = logger.New(cfg.Log, logger.BackendExtractor, middlewares.RequestIDExtractor())
	s.ctx = logger.WithBackend(s.opts.ctx, cfg.Backend)
	s.checks = health.Checks{}
	return nil
}

func (s *session) close(*cli.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](context.Background()); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// open connects the configured backend once per run.
func (s *session) open() (*jar.Jar, error) {
	if s.jar != nil {
		return s.jar, nil
	}

	store, err := s.openStore()
	if err != nil {
		return nil, err
	}

	s.jar = jar.New(store,
		jar.WithHost(s.cfg.Host),
		jar.WithLogger(s.log),
	)
	s.checks["jar"] = func(ctx context.Context) error {
		_, err := s.jar.Read(ctx)
		return err
	}
	return s.jar, nil
}

func (s *session) openStore() (jar.Store, error) {
	ctx := s.ctx
	ns := jar.WithNamespace(s.cfg.Namespace)

	switch s.cfg.Backend {
	case "memory":
		return jar.NewMemoryStore(), nil

	case "file":
		return jar.NewFileStore(s.opts.fs, s.cfg.File, jar.WithFileLogger(s.log)), nil

	case "sqlite":
		sqlDB, err := db.OpenSQLite(ctx, s.cfg.SQLite)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return sqlDB.Close() })
		if err := db.Migrate(ctx, sqlDB, db.DialectSQLite, jar.MigrationsFS(), "", s.log); err != nil {
			return nil, err
		}
		s.checks["sqlite"] = db.SQLHealthcheck(sqlDB)
		return jar.NewSQLiteStore(sqlDB, ns), nil

	case "postgres":
		pool, err := db.Connect(ctx, s.cfg.Postgres)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Shutdown(pool))
		if err := db.Migrate(ctx, stdlib.OpenDBFromPool(pool), db.DialectPostgres, jar.MigrationsFS(), s.cfg.Postgres.MigrationsTable, s.log); err != nil {
			return nil, err
		}
		s.checks["postgres"] = db.Healthcheck(pool)
		return jar.NewPostgresStore(pool, ns), nil

	case "redis":
		client, err := redis.Open(ctx, s.cfg.Redis)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, redis.Shutdown(client))
		s.checks["redis"] = redis.Healthcheck(client)
		return jar.NewRedisStore(client, jar.WithRedisKey(s.cfg.RedisKey)), nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, s.cfg.Backend)
}
