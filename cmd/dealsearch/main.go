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
	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/analytics"
	"github.com/dealhive/dealsearch/internal/cache"
	cacheRedis "github.com/dealhive/dealsearch/internal/cache/redis"
	"github.com/dealhive/dealsearch/internal/config"
	logpkg "github.com/dealhive/dealsearch/internal/logger"
	"github.com/dealhive/dealsearch/internal/metrics"
	categoryrepo "github.com/dealhive/dealsearch/internal/repository/category"
	companyrepo "github.com/dealhive/dealsearch/internal/repository/company"
	couponrepo "github.com/dealhive/dealsearch/internal/repository/coupon"
	dealrepo "github.com/dealhive/dealsearch/internal/repository/deal"
	suggestsrcrepo "github.com/dealhive/dealsearch/internal/repository/suggestsrc"
	userrepo "github.com/dealhive/dealsearch/internal/repository/user"
	storememory "github.com/dealhive/dealsearch/internal/store/memory"
	chiTransport "github.com/dealhive/dealsearch/internal/transport/chi"
	searchuc "github.com/dealhive/dealsearch/internal/usecase/search"
	suggestuc "github.com/dealhive/dealsearch/internal/usecase/suggest"
	"github.com/dealhive/dealsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dealsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Record store with seed data
	recordStore := storememory.New()
	if cfg.Storage.FixturesPath != "" {
		if err := recordStore.LoadFixtures(cfg.Storage.FixturesPath); err != nil {
			logger.Fatal("Failed to load fixtures", zap.Error(err))
		}
		logger.Info("Fixtures loaded", zap.String("path", cfg.Storage.FixturesPath))
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Result cache based on driver
	var resultCache cache.ResultCache
	ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
	switch cfg.Cache.Driver {
	case "memory":
		resultCache = cache.NewMemoryResults(ttl, nil)
	case "redis":
		redisCache, err := cacheRedis.New(cacheRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		}, ttl)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		resultCache = redisCache
	case "none":
		// caching disabled
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Cache.Driver))
	}

	// Repositories
	dealRepo := dealrepo.New(recordStore)
	couponRepo := couponrepo.New(recordStore)
	companyRepo := companyrepo.New(recordStore)
	userRepo := userrepo.New(recordStore)
	categoryRepo := categoryrepo.New(recordStore)
	suggestSrc := suggestsrcrepo.New(recordStore)

	// Suggestion service with background vocabulary refresh
	vocab := suggestuc.NewVocabulary(suggestSrc, cfg.Search.VocabDeals, cfg.Search.VocabCompanies)
	suggestSvc := suggestuc.New(suggestSrc, vocab, nil)

	ctx := context.Background()
	if err := vocab.Refresh(ctx); err != nil {
		logger.Warn("Initial vocabulary refresh failed", zap.Error(err))
	}
	metrics.VocabularySize.Set(float64(vocab.Size()))
	logger.Info("Vocabulary built", zap.Int("terms", vocab.Size()))

	refreshDone := make(chan struct{})
	go refreshVocabulary(ctx, vocab, time.Duration(cfg.Search.VocabRefreshSec)*time.Second, logger, refreshDone)

	// Analytics worker
	recorder := analytics.NewRecorder(logger, cfg.Analytics.QueueSize)
	defer recorder.Close()

	// Search orchestrator
	dispatcher := searchuc.NewDispatcher(dealRepo, couponRepo, companyRepo, userRepo, categoryRepo)
	searchSvc := searchuc.New(dispatcher, resultCache, suggestSvc, recorder, cfg.Search.FuzzyThreshold)

	// HTTP server
	server := chiTransport.NewServer(searchSvc, suggestSvc, resultCache, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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
	close(refreshDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// refreshVocabulary rebuilds the suggestion vocabulary on a fixed
// interval until done is closed.
func refreshVocabulary(
	ctx context.Context,
	vocab *suggestuc.Vocabulary,
	interval time.Duration,
	logger *zap.Logger,
	done <-chan struct{},
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := vocab.Refresh(ctx); err != nil {
				logger.Warn("Vocabulary refresh failed", zap.Error(err))
				continue
			}
			metrics.VocabularySize.Set(float64(vocab.Size()))
			logger.Debug("Vocabulary refreshed", zap.Int("terms", vocab.Size()))
		}
	}
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
