// Package middlewares provides net/http middleware for the cookie
// inspection server. All middleware has the func(http.Handler) http.Handler
// shape and mounts directly on a chi router.
//
// # Cookies
//
// Cookies binds a [cookie.Client] backed by the request Cookie header and
// the response Set-Cookie headers:
//
//	r := chi.NewRouter()
//	r.Use(middlewares.Cookies())
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		c := middlewares.CookiesFrom(r.Context())
//		theme, _, _ := c.Get(r.Context(), "theme")
//		_, _ = c.Set(r.Context(), "visited", "yes", cookie.WithPath("/"))
//	})
//
// # Request ID
//
// RequestID reuses X-Request-ID or X-Correlation-ID from the request or
// generates a UUID. Use RequestIDExtractor with logger.New to tag every log
// record with the ID:
//
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//	r.Use(middlewares.RequestID())
//
// # Recover
//
// Recover logs panics with their stack and answers 500.
package middlewares
