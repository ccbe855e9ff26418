package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/obstetra/fetal-health-service/internal/adapters/cache"
	"github.com/obstetra/fetal-health-service/internal/adapters/model"
	"github.com/obstetra/fetal-health-service/internal/api/handlers"
	"github.com/obstetra/fetal-health-service/internal/api/middleware"
	"github.com/obstetra/fetal-health-service/internal/api/routes"
	"github.com/obstetra/fetal-health-service/internal/application/services"
	"github.com/obstetra/fetal-health-service/internal/domain/providers"
	redisclient "github.com/obstetra/fetal-health-service/internal/infrastructure/clients/redis"
	"github.com/obstetra/fetal-health-service/internal/infrastructure/observability"
	"github.com/obstetra/fetal-health-service/pkg/config"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional and never blocks startup.
	var metrics *observability.Metrics
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()

			metrics, err = observability.InitMetrics()
			if err != nil {
				log.Warn().Err(err).Msg("failed to initialize metrics")
			}
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Redis is optional; the service works without caching or shared rate
	// limits.
	var cacheProvider providers.CacheProvider
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis cache initialized")
	}

	// A missing model artifact is not fatal: the server starts, /health
	// reports model_loaded:false, and predictions are refused.
	modelProvider, err := model.NewProviderFromConfig(&cfg.Model)
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.Model.Provider).Msg("model not loaded, predictions unavailable")
		modelProvider = nil
	} else {
		log.Info().Str("provider", cfg.Model.Provider).Msg("model loaded")
	}

	validator := services.NewValidator()
	predictionService := services.NewPredictionService(modelProvider, validator)
	agentService := services.NewAgentService(predictionService)

	webHandler, err := handlers.NewWebHandler(predictionService, predictionService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse UI templates")
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		handlers.NewHealthHandler(predictionService),
		handlers.NewMetaHandler(),
		handlers.NewPredictHandler(predictionService, metrics),
		handlers.NewChatHandler(agentService, cacheProvider),
		webHandler,
		cacheMiddleware,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
