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
	"golang.org/x/text/language"

	"github.com/lorehall/packdex/internal/config"
	"github.com/lorehall/packdex/internal/domain"
	logpkg "github.com/lorehall/packdex/internal/logger"
	"github.com/lorehall/packdex/internal/metrics"
	"github.com/lorehall/packdex/internal/repository/packregistry"
	chiTransport "github.com/lorehall/packdex/internal/transport/chi"
	directoryuc "github.com/lorehall/packdex/internal/usecase/directory"
	draguc "github.com/lorehall/packdex/internal/usecase/drag"
	healthuc "github.com/lorehall/packdex/internal/usecase/health"
	"github.com/lorehall/packdex/internal/version"
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

	logger.Info("Starting packdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("registry_driver", cfg.Registry.Driver),
	)

	// Create pack registry based on driver
	var registry packregistry.Registry
	switch cfg.Registry.Driver {
	case "redis":
		redisReg, rErr := packregistry.NewRedis(packregistry.RedisConfig{
			Addrs:     cfg.Registry.Addrs,
			Password:  cfg.Registry.Password,
			KeyPrefix: cfg.Registry.KeyPrefix,
		})
		if rErr != nil {
			logger.Fatal("Failed to create registry", zap.Error(rErr))
		}
		readiness := time.Duration(cfg.Registry.ReadinessTimeout) * time.Second
		if wErr := redisReg.WaitForReady(context.Background(), readiness); wErr != nil {
			logger.Fatal("Registry not ready", zap.Error(wErr))
		}
		registry = redisReg
	case "file":
		registry, err = packregistry.NewFile(cfg.Registry.Dir)
		if err != nil {
			logger.Fatal("Failed to create registry", zap.Error(err))
		}
	default:
		logger.Fatal("Unknown registry driver", zap.String("driver", cfg.Registry.Driver))
	}
	defer registry.Close()
	logger.Info("Connected to pack registry")

	// Parse the display locale driving case folding
	locale, err := language.Parse(cfg.Directory.Locale)
	if err != nil {
		logger.Fatal("Invalid directory locale", zap.String("locale", cfg.Directory.Locale), zap.Error(err))
	}

	// Register directory metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Build one directory session per privilege level. The index is built
	// once here; pack changes require a restart (stale until reconstructed).
	ctx := context.Background()
	public, err := directoryuc.New(ctx, registry, domain.Viewer{}, locale, logger)
	if err != nil {
		logger.Fatal("Failed to build public directory", zap.Error(err))
	}
	privileged, err := directoryuc.New(ctx, registry, domain.Viewer{Privileged: true}, locale, logger)
	if err != nil {
		logger.Fatal("Failed to build privileged directory", zap.Error(err))
	}
	metrics.IndexRecords.WithLabelValues("public").Set(float64(public.IndexLen()))
	metrics.IndexRecords.WithLabelValues("privileged").Set(float64(privileged.IndexLen()))

	// Drag payloads resolve against the same pack snapshot
	packs, err := registry.Packs(ctx)
	if err != nil {
		logger.Fatal("Failed to load packs for drag service", zap.Error(err))
	}
	dragSvc := draguc.New(packs)

	// Health service
	healthSvc := healthuc.New(registry)

	// Create chi server
	server, err := chiTransport.NewServer(
		public, privileged, dragSvc, healthSvc, cfg.Directory.MatchRowTemplate, logger,
	)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.Tokens, cfg.Auth.PrivilegedTokens))
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

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
