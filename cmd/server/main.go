package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/prettyknit/pattern-service/internal/app"
	"github.com/prettyknit/pattern-service/internal/config"
	"github.com/prettyknit/pattern-service/internal/handler"
	"github.com/prettyknit/pattern-service/pkg/logger"
)

// Server represents the pattern translation server
type Server struct {
	config *config.ServiceConfig
	router *mux.Router
	app    *app.App
}

// NewServer creates a new pattern translation server
func NewServer(ctx context.Context, cfg *config.ServiceConfig) (*Server, error) {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	handlerManager := handler.NewHandlerManager(cfg, a.Service, a.Registry)
	handlerManager.SetupAllRoutes(router)

	return &Server{
		config: cfg,
		router: router,
		app:    a,
	}, nil
}

// Start serves HTTP until ctx is cancelled, then drains in-flight batches
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.config.Port)

	// A batch covers up to a dozen LLM round trips, hence the long write timeout
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Base().Info("Starting server", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Base().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases the server's external connections
func (s *Server) Close() {
	if err := s.app.Close(); err != nil {
		logger.Base().Warn("failed to close app resources", zap.Error(err))
	}
}

func main() {
	// Load .env file for local development if it exists.
	// This will not override environment variables set by Helm/Docker
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: .env file not found or skipped (expected in production): %v", err)
	}

	if _, err := logger.Init(os.Getenv("LOG_ENV")); err != nil {
		log.Printf("Failed to initialize zap logger, falling back to default: %v", err)
	}
	defer logger.Sync()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Base().Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := NewServer(ctx, cfg)
	if err != nil {
		logger.Base().Fatal("Failed to create server", zap.Error(err))
	}
	defer server.Close()

	logger.Base().Info("Server initialized successfully",
		zap.String("port", cfg.Port),
		zap.String("instance_id", cfg.InstanceID),
		zap.Bool("llm_enabled", cfg.LLMEnabled()))

	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Base().Error("Server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}
