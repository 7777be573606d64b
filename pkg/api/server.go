// Package api serves the seratag REST API: tag decode and encode
// endpoints, track library lookups and Prometheus metrics.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cratekit/seratag/pkg/library"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(lib *library.Library, config ServerConfig) error {
	// Initialize metrics
	metrics := NewMetrics(prometheus.DefaultRegisterer)

	server := NewServer(lib, config, metrics)

	r := newRouter(server, config, metrics)

	// Start background metrics updater
	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting seratag REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}

func newRouter(server *Server, config ServerConfig, metrics *Metrics) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		if config.APIKey != "" {
			r.Use(metrics.InstrumentAuthMiddleware(requireAPIKey(config.APIKey)))
		}

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Tag codec
		r.Get("/kinds", metrics.InstrumentHandler("GET", "/api/v1/kinds", server.handleKinds))
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", server.handleDecode))
		r.Post("/encode", metrics.InstrumentHandler("POST", "/api/v1/encode", server.handleEncode))

		// Track library
		r.Get("/tracks", metrics.InstrumentHandler("GET", "/api/v1/tracks", server.handleListTracks))
		r.Post("/tracks", metrics.InstrumentHandler("POST", "/api/v1/tracks", server.handlePutTrack))
		r.Get("/track", metrics.InstrumentHandler("GET", "/api/v1/track", server.handleGetTrack))
		r.Delete("/track", metrics.InstrumentHandler("DELETE", "/api/v1/track", server.handleDeleteTrack))

		// Diagnostics
		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	return r
}
