// Package logger builds log/slog loggers with context extraction and
// optional Sentry forwarding.
//
// # Basic Usage
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"},
//		logger.BackendExtractor,
//	)
//
//	ctx := logger.WithBackend(context.Background(), "sqlite")
//	log.DebugContext(ctx, "cookie written", slog.String("name", "theme"))
//	// level=DEBUG msg="cookie written" name=theme backend=sqlite
//
// # Context Extractors
//
// A ContextExtractor returns an attribute taken from the context. Extractors
// run on every log call through [ContextHandler], which can wrap any
// slog.Handler:
//
//	h := logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, nil), extractors...)
//
// # Sentry
//
// Setting Config.SentryDSN sends errors to Sentry as issues and keeps
// warnings as Sentry logs, in addition to the local handler. If the SDK
// cannot be initialized the logger falls back to local output only.
//
// # Libraries
//
// Packages that accept an optional *slog.Logger default to [NewNope].
package logger
