// Command selfcheckd runs the cluster self-check engine as a standalone
// HTTP process: it loads its configuration and static blob-storage
// snapshot, wires an Observer-backed orchestrator and request engine,
// and serves /status (SPEC_FULL.md §6) and /metrics until it receives
// SIGINT or SIGTERM.
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coredb-io/clustercheck/cache"
	"github.com/coredb-io/clustercheck/config"
	"github.com/coredb-io/clustercheck/health"
	"github.com/coredb-io/clustercheck/observe"
	"github.com/coredb-io/clustercheck/orchestrator"
	"github.com/coredb-io/clustercheck/request"
	"github.com/coredb-io/clustercheck/respond"
)

// navigateCacheTTL bounds how long the orchestrator's scheme-cache
// navigate memoization layer trusts a cached placement lookup.
const navigateCacheTTL = 30 * time.Second

// shutdownGrace bounds how long the process waits for in-flight
// requests and telemetry exporters to drain before exiting.
const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("selfcheckd: loading config: %v", err)
	}

	static, err := config.LoadStaticConfig(cfg.StaticConfigPath)
	if err != nil {
		log.Fatalf("selfcheckd: loading static config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "selfcheckd",
		Tracing:     observe.TracingConfig{Enabled: cfg.TracingExporter != "none", Exporter: cfg.TracingExporter, SamplePct: 1.0},
		Metrics:     observe.MetricsConfig{Enabled: cfg.MetricsExporter != "none", Exporter: cfg.MetricsExporter},
		Logging:     observe.LoggingConfig{Enabled: true, Level: cfg.LogLevel},
	})
	if err != nil {
		log.Fatalf("selfcheckd: setting up observability: %v", err)
	}

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		log.Fatalf("selfcheckd: building middleware: %v", err)
	}

	// clients intentionally starts zero-valued: the gRPC stubs and wire
	// codecs for scheme cache, tenant, scheme shard, blob storage
	// controller, hive, and whiteboard are a host-deployment concern,
	// outside this engine's scope (SPEC_FULL.md's abstract client
	// contracts boundary). A deployment wires a populated
	// orchestrator.Clients in before serving traffic; until then every
	// fanned-out RPC answers orchestrator.ErrClientNotConfigured rather
	// than panicking, and /status reports the resulting status honestly.
	var clients orchestrator.Clients

	navigateCache := cache.NewMemoryCache(cache.DefaultPolicy())
	orch := orchestrator.New(clients, mw,
		orchestrator.WithLogger(obs.Logger()),
		orchestrator.WithNavigateCache(navigateCache, navigateCacheTTL))

	engine := request.New(orch, static, obs.Logger())

	mux := http.NewServeMux()
	respond.RegisterHandlers(mux, engine)
	health.RegisterHandlers(mux, newHealthAggregator(clients))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	log.Printf("selfcheckd: listening on %s", cfg.ListenAddr)

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			log.Printf("selfcheckd: http server error: %v", err)
		}
	case <-ctx.Done():
		log.Print("selfcheckd: shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("selfcheckd: http server shutdown: %v", err)
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Printf("selfcheckd: observer shutdown: %v", err)
	}
}
