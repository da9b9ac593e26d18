package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cookiejar/middlewares"
	"github.com/dmitrymomot/cookiejar/pkg/cookie"
	"github.com/dmitrymomot/cookiejar/pkg/health"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// NewRouter mounts the inspection API:
//
//	GET    /echo           cookies sent with the request, as JSON
//	POST   /echo/{name}    answer with Set-Cookie for ?value=
//	GET    /jar            all entries of the stored jar
//	GET    /jar/{name}     one entry of the stored jar
//	PUT    /jar/{name}     store the request body as the value
//	DELETE /jar/{name}     expire an entry of the stored jar
//	GET    /health/live
//	GET    /health/ready
func NewRouter(stored cookie.Jar, log *slog.Logger, checks health.Checks) http.Handler {
	h := &handlers{
		stored: cookie.New(stored, cookie.WithLogger(log)),
		log:    log,
	}

	r := chi.NewRouter()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Recover(log))
	r.Use(accessLog(log))

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithLogger(log)))

	r.Route("/echo", func(r chi.Router) {
		r.Use(middlewares.Cookies(cookie.WithLogger(log)))
		r.Get("/", h.echoList)
		r.Post("/{name}", h.echoSet)
	})

	r.Route("/jar", func(r chi.Router) {
		r.Get("/", h.jarList)
		r.Get("/{name}", h.jarGet)
		r.Put("/{name}", h.jarSet)
		r.Delete("/{name}", h.jarRemove)
	})

	return r
}

// Run serves handler on addr until ctx is done, then shuts down gracefully
// and runs the shutdown hooks.
func Run(ctx context.Context, addr string, handler http.Handler, log *slog.Logger, hooks ...func(context.Context) error) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range hooks {
		if err := hook(shutdownCtx); err != nil {
			log.Error("shutdown hook failed", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.DebugContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
