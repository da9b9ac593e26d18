package db

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/cookiejar/pkg/logger"
)

// Dialect selects the SQL flavour goose generates for its version table.
type Dialect = database.Dialect

const (
	DialectSQLite   Dialect = database.DialectSQLite3
	DialectPostgres Dialect = database.DialectPostgres
)

const defaultMigrationsTable = "schema_migrations"

// Migrate applies all pending goose migrations found in migrations.
// An empty table name uses "schema_migrations".
func Migrate(ctx context.Context, sqlDB *sql.DB, dialect Dialect, migrations fs.FS, table string, log *slog.Logger) error {
	if table == "" {
		table = defaultMigrationsTable
	}
	if log == nil {
		log = logger.NewNope()
	}

	store, err := database.NewStore(dialect, table)
	if err != nil {
		return errors.Join(ErrCreateMigrator, err)
	}

	provider, err := goose.NewProvider("", sqlDB, migrations, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrCreateMigrator, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}
