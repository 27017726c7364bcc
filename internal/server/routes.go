package server

import (
	"github.com/citelens/citelens/internal/server/handlers"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	s.router.Post("/api/search", handlers.NewSearchHandler(s.opts.Resolver).ServeHTTP)
	s.router.Get("/check-health", handlers.CheckHealthHandler)

	if !s.opts.DisableHealthProbes {
		s.router.Get("/health", handlers.HealthHandler)
		s.router.Get("/health/live", handlers.LivenessHandler)
		s.router.Get("/health/ready", handlers.ReadinessHandler)
		s.router.Get("/health/startup", handlers.StartupHandler)
	}

	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", MetricsHandler)

	if s.opts.StaticDir != "" {
		s.router.Get("/public/*", staticHandler(s.opts.StaticDir))
	}
}
