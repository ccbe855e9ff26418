package routes

import (
	"net/http"

	"github.com/obstetra/fetal-health-service/internal/api/handlers"
	"github.com/obstetra/fetal-health-service/internal/api/middleware"
	"github.com/obstetra/fetal-health-service/internal/infrastructure/observability"
)

// Router holds all route handlers.
type Router struct {
	mux *http.ServeMux

	healthHandler  *handlers.HealthHandler
	metaHandler    *handlers.MetaHandler
	predictHandler *handlers.PredictHandler
	chatHandler    *handlers.ChatHandler
	webHandler     *handlers.WebHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	metaHandler *handlers.MetaHandler,
	predictHandler *handlers.PredictHandler,
	chatHandler *handlers.ChatHandler,
	webHandler *handlers.WebHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		healthHandler:   healthHandler,
		metaHandler:     metaHandler,
		predictHandler:  predictHandler,
		chatHandler:     chatHandler,
		webHandler:      webHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes and the middleware chain.
func (r *Router) SetupRoutes() http.Handler {
	// UI pages
	r.mux.HandleFunc("GET /{$}", r.webHandler.Home)
	r.mux.HandleFunc("GET /form", r.webHandler.Form)
	r.mux.HandleFunc("POST /predict", r.webHandler.PredictForm)
	r.mux.HandleFunc("GET /chat", r.webHandler.Chat)

	// Health check
	r.mux.HandleFunc("GET /health", r.healthHandler.Check)

	// JSON API
	r.mux.HandleFunc("GET /api/sample", r.metaHandler.Sample)
	r.mux.HandleFunc("GET /api/features", r.metaHandler.Features)
	r.mux.HandleFunc("GET /api/examples", r.metaHandler.Examples)
	r.mux.HandleFunc("POST /api/predict", r.predictHandler.Predict)
	r.mux.HandleFunc("POST /api/chat", r.chatHandler.Chat)

	var handler http.Handler = r.mux

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.Compression(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
