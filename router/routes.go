// Package router assembles the chi middleware stack around the gateway
// dispatcher. All endpoint routing happens inside the dispatcher's route
// table; chi only hosts the cross-cutting middleware chain.
package router

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/payfront/payfront/infra/config"
	"github.com/payfront/payfront/infra/middle"
	"github.com/payfront/payfront/infra/opensearch"
)

// New builds the HTTP entrypoint: middleware chain plus the dispatcher
// mounted as a catch-all. The OpenSearch logger may be nil.
func New(dispatcher http.Handler, osLogger *opensearch.Logger) chi.Router {
	cfg := config.App()

	r := chi.NewRouter()

	// Basic Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Security Middleware
	rateLimiter := middle.NewRateLimiter()
	r.Use(middle.SecurityHeadersMiddleware())
	r.Use(middle.RateLimitMiddleware(rateLimiter))

	// Dispatch logging middleware (before the dispatcher so every request is captured)
	if osLogger != nil {
		r.Use(middle.DispatchLoggingMiddleware(osLogger))
		log.Println("Dispatch logging middleware enabled")
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature", "Origin", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "Content-Length", "Access-Control-Allow-Origin"},
		AllowCredentials: true,
		MaxAge:           300, // Preflight cache time (second)
	}))

	// Everything else is the dispatcher's business: the ordered route table
	// first, then the RPC fallback for whatever the table does not claim.
	r.Handle("/*", dispatcher)

	return r
}
