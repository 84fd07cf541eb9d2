// Package server assembles the planner HTTP server from configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/BuildPlanner/backend/internal/api/http"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/api/middleware"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/advisor"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/estimate"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/planner"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/cache"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/tracing"
)

const (
	redisDialTimeout = 5 * time.Second
	memoryCacheSize  = 1024
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	cache      cache.Cache
	tracer     *tracing.Tracer
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)
	logger.Info("Initializing BuildPlanner server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Bool("ai_enabled", cfg.AI.Enabled),
		zap.String("ai_url", cfg.AI.URL),
		zap.String("ai_model", cfg.AI.Model),
	)

	rates := estimate.DefaultRates()
	if cfg.Estimate.RatesFile != "" {
		loaded, err := estimate.LoadRates(cfg.Estimate.RatesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load rates: %w", err)
		}
		rates = loaded
		logger.Info("Loaded rate table", zap.String("file", cfg.Estimate.RatesFile))
	}
	calc := estimate.NewCalculator(rates, cfg.Estimate.Location)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("planner", logger.Logger)

	store, backend := newCache(cfg.Cache, logger)

	breaker := advisor.NewBreaker(func(name string, from, to resilience.State) {
		metrics.SetBreakerState(name, float64(to))
		logger.Warn("Circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	metrics.SetBreakerState(breaker.Name(), float64(resilience.StateClosed))

	aiCfg := advisor.Config{
		Enabled:  cfg.AI.Enabled,
		URL:      cfg.AI.URL,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
		Retries:  advisor.DefaultConfig().Retries,
		CacheTTL: cfg.Cache.TTL,
	}
	adv := advisor.NewService(aiCfg,
		advisor.WithGenerator(advisor.NewClient(aiCfg, breaker)),
		advisor.WithCache(store),
		advisor.WithLogger(logger.Logger),
		advisor.WithMetrics(metrics),
		advisor.WithTracer(tracer),
	)

	svc := planner.NewService(calc, adv, logger.Logger, metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.AccessLog(logger.Logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	handlers := api.NewHandlers(svc, api.Options{
		Logger:    logger.Logger,
		Metrics:   metrics,
		Breaker:   breaker,
		AIEnabled: cfg.AI.Enabled,
		AIModel:   cfg.AI.Model,
		Cache:     backend,
	})
	api.RegisterRoutes(router, handlers)

	s := &Server{
		router:  router,
		cache:   store,
		tracer:  tracer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully", zap.String("cache", backend))
	return s, nil
}

// newCache connects to Redis when an address is configured and falls back
// to an in-process cache otherwise, or when Redis is unreachable.
func newCache(cfg config.CacheConfig, logger *logging.Logger) (cache.Cache, string) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(memoryCacheSize), "memory"
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   "planner",
	})
	if err != nil {
		logger.Warn("Redis unavailable, caching in memory",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		return cache.NewMemoryCache(memoryCacheSize), "memory"
	}
	logger.Info("Connected to Redis cache", zap.String("addr", cfg.RedisAddr))
	return store, "redis"
}

// Handler returns the router wrapped with response compression.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Metrics exposes the server's metrics.
func (s *Server) Metrics() *monitoring.Metrics {
	return s.metrics
}

// Run starts the HTTP server and blocks until it is shut down.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// is done, then releases the cache and the tracer.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
	}
	if err := s.cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close cache: %w", err))
	}
	s.tracer.Close()

	_ = s.logger.Sync()
	return errors.Join(errs...)
}

// Close shuts down with the configured timeout.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
