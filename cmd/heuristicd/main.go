// Command heuristicd starts the network routing and stability advisor
// service: it loads configuration from the environment, wires the
// facade to an HTTP demo transport, optionally bootstraps a snapshot
// from a YAML fixture, and serves until signaled to shut down.
//
// # Environment Variables
//
//   - HEURISTIC_LISTEN: HTTP listen address (default 0.0.0.0:50052)
//   - HISTORY_WINDOW: stability sample window size (default 50)
//   - EMA_SMOOTHING: exponential smoothing factor (default 0.3)
//   - ANOMALY_THRESHOLD: read into the configuration (default 3); the
//     stability analyzer does not use it and keeps its built-in threshold of 3
//   - RECENT_RUNS_CAP: diagnostic ring size per algorithm (default 20)
//   - SNAPSHOT_BOOTSTRAP_FILE: optional YAML snapshot to apply at startup
//   - LOG_JSON: use JSON log output (default false)
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sagsin-net/heuristic/facade"
	"github.com/sagsin-net/heuristic/internal/config"
	"github.com/sagsin-net/heuristic/internal/obslog"
	"github.com/sagsin-net/heuristic/internal/transport/httpapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		obslog.Default().Error("invalid configuration", "error", err.Error())

		return 1
	}

	log := obslog.New(obslog.Config{Level: obslog.LevelInfo, JSON: cfg.LogJSON}).With("component", "heuristicd")
	log.Info("starting", "listen", cfg.Listen, "history_window", cfg.HistoryWindow, "ema_smoothing", cfg.EMASmoothing)

	metrics := facade.NewMetrics()
	svc := facade.New(cfg.HistoryWindow, cfg.EMASmoothing, cfg.RecentRunsCap, metrics, log)

	if cfg.SnapshotBootstrapFile != "" {
		if err := httpapi.LoadBootstrapSnapshot(svc, cfg.SnapshotBootstrapFile); err != nil {
			log.Error("bootstrap snapshot failed", "file", cfg.SnapshotBootstrapFile, "error", err.Error())

			return 1
		}
		log.Info("bootstrap snapshot applied", "file", cfg.SnapshotBootstrapFile)
	}

	server := httpapi.NewServer(svc, metrics, log)
	httpServer := &http.Server{Addr: cfg.Listen, Handler: server.Router()}

	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err

			return
		}
		serveErr <- nil
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("listen failed", "listen", cfg.Listen, "error", err.Error())

			return 1
		}
	case <-sig:
		log.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "error", err.Error())

			return 1
		}
	}

	log.Info("stopped")

	return 0
}
