package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/smehra/proconnect/internal/config"
	"github.com/smehra/proconnect/internal/engine"
	"github.com/smehra/proconnect/internal/graph"
	"github.com/smehra/proconnect/internal/logging"
	"github.com/smehra/proconnect/internal/metrics"
	"github.com/smehra/proconnect/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	var (
		accessor graph.Accessor
		pinger   server.Pinger
	)
	if cfg.Graph.InMemory {
		logger.Warn("using in-memory graph accessor, data will not persist")
		accessor = graph.NewMemoryAccessor()
	} else {
		store, err := graph.NewNeo4jAccessor(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			logger.Error("failed to create graph accessor", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				logger.Warn("closing graph accessor failed", "error", err)
			}
		}()
		pinger = store

		accessor = store
		if cfg.Graph.BreakerEnabled {
			accessor = graph.WithBreaker(accessor, graph.BreakerOptions{
				ConsecutiveFailures: uint32(cfg.Graph.BreakerFailures),
				Timeout:             cfg.Graph.BreakerTimeout,
			})
		}
	}

	var collector metrics.Collector = metrics.Noop{}
	var registry *prometheus.Registry
	if cfg.HTTP.MetricsEnabled {
		promCollector := metrics.NewCollector()
		collector = promCollector
		registry = promCollector.Registry()
	}

	eng := engine.New(accessor, collector)
	apiHandlers := server.NewAPIHandlers(logger, eng, cfg.Engine)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:         server.GraphHealthService{Graph: pinger},
		API:            apiHandlers,
		Metrics:        registry,
		AllowedOrigins: parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
