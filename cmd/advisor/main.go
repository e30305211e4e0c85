package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/roofcast/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/roofcast/internal/adapter/kafka"
	"github.com/couchcryptid/roofcast/internal/config"
	"github.com/couchcryptid/roofcast/internal/domain"
	"github.com/couchcryptid/roofcast/internal/forecast"
	"github.com/couchcryptid/roofcast/internal/observability"
	"github.com/couchcryptid/roofcast/internal/pipeline"
	"github.com/couchcryptid/roofcast/internal/worklog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	site := forecast.Site{Name: cfg.SiteName, Lat: cfg.SiteLat, Lon: cfg.SiteLon}
	client := forecast.NewClient(cfg.ForecastBaseURL, cfg.ForecastDays, cfg.ForecastTimeout, metrics, logger)
	provider := forecast.NewCachedProvider(client, cfg.ForecastCacheSize, cfg.ForecastCacheTTL, nil, metrics)

	// Decision publishing is feature-flagged via KAFKA_ENABLED.
	var publisher pipeline.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	store, err := worklog.Open(cfg.WorklogPath)
	if err != nil {
		logger.Error("failed to open work log", "path", cfg.WorklogPath, "error", err)
		os.Exit(1)
	}

	assemblies := domain.Catalog()
	p := pipeline.New(provider, publisher, assemblies, site, cfg.RefreshInterval, logger, metrics, nil)

	srv := httpapi.NewServer(cfg.HTTPAddr, p, p, assemblies, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("work log close error", "error", err)
	}

	logger.Info("shutdown complete")
}
