package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// CORS wraps next with a policy allowing the given origins, every method
// and header, and credentials. An empty list, or one containing "*", allows
// any origin; the request origin is then echoed back since browsers refuse
// a literal "*" on credentialed requests.
func CORS(origins []string, next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return cors.New(opts).Handler(next)
}
