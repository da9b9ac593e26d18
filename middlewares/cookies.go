package middlewares

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/cookiejar/pkg/cookie"
	"github.com/dmitrymomot/cookiejar/pkg/jar"
)

type cookiesKey struct{}

// Cookies returns middleware that binds a cookie.Client over the request
// and its response to the request context. Values set during the request
// are visible to later reads in the same request.
func Cookies(opts ...cookie.ClientOption) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := cookie.New(jar.NewHTTP(w, r), opts...)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), cookiesKey{}, c)))
		})
	}
}

// CookiesFrom returns the client bound by Cookies, or nil when the
// middleware is not installed.
func CookiesFrom(ctx context.Context) *cookie.Client {
	c, _ := ctx.Value(cookiesKey{}).(*cookie.Client)
	return c
}
