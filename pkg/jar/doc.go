// Package jar provides cookie jars that can back a [cookie.Client] outside
// a browser.
//
// [Jar] applies the host rules a browser would: entries are keyed by name,
// domain and path, expired entries are evicted, and domain attributes that
// are public suffixes are rejected. The records themselves live in a
// [Store]:
//
//   - [MemoryStore]: process memory, insertion ordered
//   - [FileStore]: a Netscape cookies.txt file on any afero filesystem
//   - [SQLStore]: the cookie_jar table in SQLite or PostgreSQL
//   - [RedisStore]: one Redis hash per jar
//
// # Usage
//
//	j := jar.New(jar.NewFileStore(afero.NewOsFs(), "cookies.txt"),
//		jar.WithHost("app.example.com"),
//	)
//	c := cookie.New(j)
//	_, err := c.Set(ctx, "session", "abc", cookie.WithDomain("example.com"))
//
// SQL stores need the table first. [MigrationsFS] holds the goose
// migrations:
//
//	sqlDB, err := db.OpenSQLite(ctx, db.SQLiteConfig{Path: "cookies.db"})
//	err = db.Migrate(ctx, sqlDB, db.DialectSQLite, jar.MigrationsFS(), "", logger)
//	j := jar.New(jar.NewSQLiteStore(sqlDB))
//
// # HTTP Handlers
//
// [HTTP] is a jar scoped to one request. It reads the Cookie header and
// writes Set-Cookie headers, and it shows writes made during the request to
// later reads in the same request.
//
// # Errors
//
//   - [ErrInvalidEntry]: the written entry has neither name nor value
//   - [ErrDomainRejected]: the domain attribute is a public suffix or does
//     not match the bound host
//   - [ErrInvalidRecord]: the store cannot represent the record
//   - [ErrStore]: the store failed; joined with the underlying error
package jar
