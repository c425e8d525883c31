package middleware

import "net/http"

// Middleware wraps an http.Handler with extra behavior.
type Middleware func(http.Handler) http.Handler

// Chain folds a list of middleware into one. The first argument ends up
// outermost: Chain(a, b)(h) serves a(b(h)), so a sees the request first.
func Chain(list ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(list) - 1; i >= 0; i-- {
			h = list[i](h)
		}
		return h
	}
}
