package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/prettyknit/pattern-service/internal/config"
	"github.com/prettyknit/pattern-service/internal/language"
	"github.com/prettyknit/pattern-service/pkg/logger"
)

// HandlerManager owns the HTTP handlers and wires them to the router
type HandlerManager struct {
	config    *config.ServiceConfig
	generator ArchiveGenerator
	registry  *language.Registry
}

// NewHandlerManager creates the handler manager
func NewHandlerManager(cfg *config.ServiceConfig, generator ArchiveGenerator, registry *language.Registry) *HandlerManager {
	return &HandlerManager{
		config:    cfg,
		generator: generator,
		registry:  registry,
	}
}

// SetupAllRoutes sets up all routes with middleware
func (hm *HandlerManager) SetupAllRoutes(router *mux.Router) {
	router.Use(RequestIDMiddleware)
	if hm.config.EnableCORS {
		router.Use(CORSMiddleware)
	}
	router.Use(GlobalLoggingMiddleware)

	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)

	hm.SetupAPIRoutes(router)

	logger.Base().Info("all application routes registered",
		zap.Bool("cors", hm.config.EnableCORS),
		zap.Bool("api_key_required", hm.config.SecretKey != ""))
}

// SetupAPIRoutes sets up the /api routes and their middleware
func (hm *HandlerManager) SetupAPIRoutes(router *mux.Router) {
	apiRouter := router.PathPrefix("/api").Subrouter()

	apiRouter.Use(LoggingMiddleware)
	apiRouter.Use(ValidationMiddleware)
	apiRouter.Use(APIKeyMiddleware(hm.config.SecretKey))

	patternHandler := NewPatternHandler(hm.generator, hm.registry, hm.config.MaxRequestBytes)
	patternHandler.SetupPatternRoutes(apiRouter)

	// Preflight requests never match a POST route, so they get their own
	if hm.config.EnableCORS {
		router.PathPrefix("/api/").HandlerFunc(handleCORS).Methods(http.MethodOptions)
	}

	logger.Base().Info("pattern api routes registered")
}

// handleCORS handles CORS preflight requests for API routes
func handleCORS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusOK)
}
