package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-shorturl-relay/config"
	"go-shorturl-relay/handlers"
	"go-shorturl-relay/metrics"
	"go-shorturl-relay/services"
	"go-shorturl-relay/upstream"
)

// Run starts the relay and blocks until an interrupt or termination signal arrives.
func Run(logger *zap.Logger, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, err := NewRouter(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	srv := setupServer(cfg, router)

	go startServer(srv, logger)

	return waitForShutdown(ctx, srv, logger)
}

// NewRouter builds the relay router with its full dependency graph.
func NewRouter(ctx context.Context, cfg *config.Config, logger *zap.Logger, reg *prometheus.Registry) (*gin.Engine, error) {
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	relayMetrics := metrics.NewRelay(reg)

	client := upstream.NewRemoteClient(cfg.RemoteBaseURL, cfg.UpstreamTimeout, logger.Named("upstream"))
	relayService := services.NewRelayService(client, services.BreakerSettings{
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}, relayMetrics, logger.Named("relay"))

	handler, err := handlers.NewRelayHandler(ctx, relayService, cfg, relayMetrics, logger)
	if err != nil {
		logger.Error("Failed to create relay handler", zap.Error(err))
		return nil, err
	}
	logger.Debug("Relay handler created successfully", zap.String("remote", cfg.RemoteBaseURL))

	router := gin.New()
	router.Use(gin.Recovery())
	handlers.RegisterRoutes(router, handler, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), logger)
	return router, nil
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func startServer(srv *http.Server, logger *zap.Logger) {
	logger.Info("Starting server", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
	}
	logger.Debug("Server stopped")
}

func waitForShutdown(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	<-ctx.Done()
	logger.Info("Received shutdown signal. Initiating server shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
