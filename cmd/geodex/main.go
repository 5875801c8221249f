package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/config"
	dbRedis "github.com/geodex-search/geodex/internal/db/redis"
	logpkg "github.com/geodex-search/geodex/internal/logger"
	"github.com/geodex-search/geodex/internal/metrics"
	indexrepo "github.com/geodex-search/geodex/internal/repository/index"
	chiTransport "github.com/geodex-search/geodex/internal/transport/chi"
	"github.com/geodex-search/geodex/internal/transport/geoip"
	"github.com/geodex-search/geodex/internal/transport/nominatim"
	"github.com/geodex-search/geodex/internal/transport/openai"
	facetsuc "github.com/geodex-search/geodex/internal/usecase/facets"
	healthuc "github.com/geodex-search/geodex/internal/usecase/health"
	resolveuc "github.com/geodex-search/geodex/internal/usecase/resolve"
	searchuc "github.com/geodex-search/geodex/internal/usecase/search"
	"github.com/geodex-search/geodex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting geodex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	if err := ensureIndex(ctx, store, cfg.Index); err != nil {
		logger.Fatal("Failed to ensure document index", zap.Error(err))
	}

	locator, err := geoip.Open(cfg.GeoIP.DBPath)
	if err != nil {
		logger.Fatal("Failed to open GeoIP database",
			zap.String("path", cfg.GeoIP.DBPath),
			zap.Error(err),
		)
	}
	defer locator.Close()

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	recognizer := openai.NewRecognizer(&openai.Config{
		APIKey:   cfg.Recognizer.APIKey,
		BaseURL:  cfg.Recognizer.BaseURL,
		Model:    cfg.Recognizer.Model,
		Provider: cfg.Recognizer.Provider,
		Timeout:  time.Duration(cfg.Recognizer.TimeoutSec) * time.Second,
		Logger:   logger,
	})
	if err := recognizer.HealthCheck(ctx); err != nil {
		logger.Fatal("Entity recognizer not reachable", zap.Error(err))
	}
	logger.Info("Entity recognizer ready",
		zap.String("provider", cfg.Recognizer.Provider),
		zap.String("model", cfg.Recognizer.Model),
	)

	geocoder := nominatim.New(&nominatim.Config{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   time.Duration(cfg.Geocoder.TimeoutSec) * time.Second,
		Logger:    logger,
	})

	indexRepo := indexrepo.New(store, cfg.Index.Name, cfg.Index.ResultLimit)

	// Create use case services
	resolveSvc := resolveuc.New(geocoder, locator, logger)
	searchSvc := searchuc.New(indexRepo, recognizer, resolveSvc, logger)
	facetsSvc := facetsuc.New(indexRepo, resolveSvc, logger)
	healthSvc := healthuc.New(store, recognizer)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, facetsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// ensureIndex creates the document FT index if it does not exist yet.
func ensureIndex(ctx context.Context, store *dbRedis.Store, cfg config.IndexConfig) error {
	exists, err := store.IndexExists(ctx, cfg.Name)
	if err != nil {
		return fmt.Errorf("probe index: %w", err)
	}
	if exists {
		return nil
	}
	if err := store.CreateIndex(ctx, indexrepo.Definition(cfg.Name, cfg.KeyPrefix)); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
