// Package db opens the SQL databases that back persistent cookie jars.
//
// PostgreSQL goes through [github.com/jackc/pgx/v5/pgxpool] and SQLite
// through the pure Go driver [modernc.org/sqlite]. Schemas are applied with
// the [github.com/pressly/goose/v3] provider from any [io/fs.FS].
//
// # Configuration
//
// [Config] and [SQLiteConfig] are filled from environment variables:
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 4)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 0)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection retry attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//	SQLITE_PATH                 - SQLite database file (default: cookies.db)
//	SQLITE_BUSY_TIMEOUT         - SQLite busy timeout (default: 5s)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	err = db.Migrate(ctx, stdlib.OpenDBFromPool(pool), db.DialectPostgres,
//		jar.MigrationsFS(), cfg.MigrationsTable, logger)
//
// SQLite:
//
//	sqlDB, err := db.OpenSQLite(ctx, db.SQLiteConfig{Path: "cookies.db"})
//	if err != nil {
//		return err
//	}
//	defer sqlDB.Close()
//
// # Errors
//
//   - [ErrEmptyConnectionString] - No URL or path configured
//   - [ErrFailedToParseDBConfig] - Invalid connection string format
//   - [ErrFailedToOpenDBConnection] - Connection failed after all retries
//   - [ErrHealthcheckFailed] - Database ping failed
//   - [ErrCreateMigrator], [ErrApplyMigrations] - Migration setup or execution failed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
