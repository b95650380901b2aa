package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/neo-impact-service/internal/adapter/feedcache"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/neo-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/neows"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/sbdb"
	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/couchcryptid/neo-impact-service/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal outside local development.
	dotenvErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	if dotenvErr != nil {
		logger.Debug("no .env file loaded", "error", dotenvErr)
	}
	if cfg.NASAAPIKey == config.DefaultNASAAPIKey {
		logger.Warn("using NASA DEMO_KEY; requests are heavily rate limited")
	}

	var feed domain.FeedSource = neows.NewClient(cfg.NeoFeedURL, cfg.NASAAPIKey, cfg.FeedTimeout, metrics, logger)

	// Shared feed cache (enabled via VALKEY_ADDR).
	var store *feedcache.ValkeyStore
	if cfg.FeedCacheEnabled() {
		store, err = feedcache.NewValkeyStore(cfg.ValkeyAddr)
		if err != nil {
			logger.Error("feed cache unavailable, continuing without it", "error", err)
		} else {
			feed = feedcache.New(feed, store, cfg.FeedCacheTTL, metrics, logger)
			logger.Info("feed cache enabled", "addr", cfg.ValkeyAddr, "ttl", cfg.FeedCacheTTL)
		}
	}

	// Small-body enrichment (feature-flagged via SBDB_ENABLED).
	var lookup domain.BodyLookup
	if cfg.SBDBEnabled {
		client := sbdb.NewClient(cfg.SBDBURL, cfg.SBDBTimeout, metrics, logger)
		lookup = sbdb.NewCachedBodyLookup(client, cfg.SBDBCacheSize, metrics)
		logger.Info("sbdb enrichment enabled", "cache_size", cfg.SBDBCacheSize, "timeout", cfg.SBDBTimeout)
	} else {
		logger.Info("sbdb enrichment disabled")
	}

	// Scenario publishing (enabled via KAFKA_BROKERS).
	var (
		publisher domain.ScenarioPublisher
		writer    *kafkaadapter.ScenarioPublisher
	)
	if cfg.PublishingEnabled() {
		writer = kafkaadapter.NewScenarioPublisher(cfg, metrics, logger)
		publisher = writer
		logger.Info("scenario publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaScenarioTopic)
	}

	p := pipeline.New(feed, lookup, publisher, logger, metrics)

	srv := httpadapter.NewServer(httpadapter.Options{
		Addr:           cfg.HTTPAddr,
		StaticDir:      cfg.StaticDir,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, p, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
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
	if store != nil {
		store.Close()
	}

	logger.Info("shutdown complete")
}
