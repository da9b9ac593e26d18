package jar

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsFS returns the goose migrations that create the cookie_jar table.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const defaultNamespace = "default"

// SQLStore keeps records in the cookie_jar table. Several jars can share
// the table under different namespaces.
type SQLStore struct {
	db        *sql.DB
	namespace string
	dollar    bool
}

// SQLOption configures a SQLStore.
type SQLOption func(*SQLStore)

// WithNamespace sets the jar column value. Default: "default".
func WithNamespace(ns string) SQLOption {
	return func(s *SQLStore) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// NewSQLiteStore creates a store over a database/sql handle opened with
// the modernc.org/sqlite driver.
func NewSQLiteStore(db *sql.DB, opts ...SQLOption) *SQLStore {
	return newSQLStore(db, false, opts)
}

// NewPostgresStore creates a store over a pgx pool. The pool is shared and
// must be closed by the caller.
func NewPostgresStore(pool *pgxpool.Pool, opts ...SQLOption) *SQLStore {
	return newSQLStore(stdlib.OpenDBFromPool(pool), true, opts)
}

func newSQLStore(db *sql.DB, dollar bool, opts []SQLOption) *SQLStore {
	s := &SQLStore{
		db:        db,
		namespace: defaultNamespace,
		dollar:    dollar,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const (
	loadQuery = `SELECT name, value, domain, path, expires_at, secure, created_at
FROM cookie_jar WHERE jar = ? ORDER BY created_at, name`

	saveQuery = `INSERT INTO cookie_jar (jar, name, domain, path, value, expires_at, secure, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (jar, name, domain, path) DO UPDATE SET
	value = excluded.value,
	expires_at = excluded.expires_at,
	secure = excluded.secure`

	deleteQuery = `DELETE FROM cookie_jar WHERE jar = ? AND name = ? AND domain = ? AND path = ?`
)

func (s *SQLStore) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(loadQuery), s.namespace)
	if err != nil {
		return nil, fmt.Errorf("jar: load: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r                Record
			expires, created int64
		)
		if err := rows.Scan(&r.Name, &r.Value, &r.Domain, &r.Path, &expires, &r.Secure, &created); err != nil {
			return nil, fmt.Errorf("jar: scan: %w", err)
		}
		if expires > 0 {
			r.Expires = time.Unix(expires, 0)
		}
		r.Created = time.Unix(0, created)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("jar: load: %w", err)
	}

	return records, nil
}

func (s *SQLStore) Save(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, s.bind(saveQuery),
		s.namespace, rec.Name, rec.Domain, rec.Path, rec.Value, unixOrZero(rec.Expires), rec.Secure, rec.Created.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("jar: save %q: %w", rec.Name, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key Key) error {
	_, err := s.db.ExecContext(ctx, s.bind(deleteQuery), s.namespace, key.Name, key.Domain, key.Path)
	if err != nil {
		return fmt.Errorf("jar: delete %q: %w", key.Name, err)
	}
	return nil
}

// bind rewrites ? placeholders as $1, $2, ... for postgres.
func (s *SQLStore) bind(query string) string {
	if !s.dollar {
		return query
	}

	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

var _ Store = (*SQLStore)(nil)
