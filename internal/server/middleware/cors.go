package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSOptions configures cross-origin access for browser clients.
type CORSOptions struct {
	AllowedOrigins []string
	Debug          bool
}

// CORS returns a middleware that answers preflight requests and decorates
// responses for the configured origins. An empty origin list allows any origin.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         600,
		Debug:          opts.Debug,
	})
	return c.Handler
}
