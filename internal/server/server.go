// Package server exposes the shifu HTTP API: recording pronunciation
// practice attempts and serving stats plus a practice recommendation.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runger/shifu/internal/practice"
	"github.com/runger/shifu/internal/recommend"
	"github.com/runger/shifu/internal/stats"
	"github.com/runger/shifu/internal/storage"
)

// Recommender obtains a validated recommendation from the completion
// backend. Satisfied by *recommend.Recommender.
type Recommender interface {
	Recommend(ctx context.Context, history []stats.SyllableStat) (*recommend.Recommendation, error)
}

// Handler provides the HTTP handlers for the shifu API.
type Handler struct {
	store       storage.Store
	service     *practice.Service
	aggregator  *stats.Aggregator
	recommender Recommender
	logger      *slog.Logger
}

// HandlerDependencies contains required dependencies for the handler.
type HandlerDependencies struct {
	Store       storage.Store
	Service     *practice.Service
	Aggregator  *stats.Aggregator
	Recommender Recommender
	Logger      *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDependencies) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Handler{
		store:       deps.Store,
		service:     deps.Service,
		aggregator:  deps.Aggregator,
		recommender: deps.Recommender,
		logger:      deps.Logger,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v0/hello", h.HandleHello)
	mux.HandleFunc("GET /api/v0/attempts", h.HandleListAttempts)
	mux.HandleFunc("POST /api/v0/attempts", h.HandleRecordAttempt)
	mux.HandleFunc("GET /api/v0/recommendation", h.HandleRecommendation)
}

// Run starts the HTTP server and blocks until the context is
// cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler *Handler) error {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           Chain(mux, RequestLogging(handler.logger), CORS()),
		ReadHeaderTimeout: 10 * time.Second,
		// No WriteTimeout: a recommendation request runs its full
		// retry budget before responding.
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		handler.logger.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	handler.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
