// Package api provides the HTTP REST API server for the property analyser.
// It exposes one-shot endpoints for deal analysis and market data lookups.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/reddotai/sg-property-analyser/internal/config"
	"github.com/reddotai/sg-property-analyser/internal/datasource"
	"github.com/reddotai/sg-property-analyser/internal/engine"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	eng    *engine.Engine
	agg    *datasource.Aggregator
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	eng, err := engine.New(cfg.EngineParams())
	if err != nil {
		return nil, fmt.Errorf("engine setup failed: %w", err)
	}

	agg := datasource.NewAggregator(datasource.AggregatorOptions{
		URABaseURL: cfg.Market.URABaseURL,
		URAKey:     cfg.Market.URAAPIKey,
		NewsFeeds:  cfg.Market.NewsFeeds,
		Months:     cfg.Market.Months,
		CacheTTL:   time.Duration(cfg.Market.CacheTTLHours) * time.Hour,
		CacheFile:  cfg.Market.CacheFile,
	})

	srv := &Server{
		cfg: cfg,
		eng: eng,
		agg: agg,
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Deal analysis
		r.Post("/analyze", s.handleAnalyze)

		// Market data
		r.Get("/market/transactions", s.handleTransactions)
		r.Get("/market/history", s.handleHistory)

		// Effective rule set
		r.Get("/config", s.handleConfig)
	})

	return r
}
