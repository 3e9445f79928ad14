// Package config loads the environment-variable-driven configuration
// of spec §6, following the getEnvString/getEnvInt pattern used by the
// retrieved AleutianLocal orchestrator's main.go.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the fully-resolved, validated configuration for
// cmd/heuristicd.
type Config struct {
	// Listen is the facade's HTTP listen address.
	Listen string
	// HistoryWindow is the bounded sample-window size W (stability.History).
	HistoryWindow int
	// EMASmoothing is the exponential-smoothing factor alpha in (0,1].
	EMASmoothing float64
	// AnomalyThreshold is read from ANOMALY_THRESHOLD. It is not passed
	// on: the facade's stability analyzer always uses
	// stability.DefaultAnomalyThreshold.
	AnomalyThreshold float64
	// RecentRunsCap bounds the facade's per-algorithm diagnostic ring.
	RecentRunsCap int
	// SnapshotBootstrapFile, if non-empty, is a YAML fixture applied at
	// startup before the transport begins serving.
	SnapshotBootstrapFile string
	// LogJSON selects JSON-formatted logs over text.
	LogJSON bool
}

const (
	defaultListen           = "0.0.0.0:50052"
	defaultHistoryWindow    = 50
	defaultEMASmoothing     = 0.3
	defaultAnomalyThreshold = 3.0
	defaultRecentRunsCap    = 20
)

// Load reads Config from the process environment, applying the
// defaults of spec §6 for anything unset.
func Load() (Config, error) {
	cfg := Config{
		Listen:                getEnvString("HEURISTIC_LISTEN", defaultListen),
		HistoryWindow:         getEnvInt("HISTORY_WINDOW", defaultHistoryWindow),
		EMASmoothing:          getEnvFloat("EMA_SMOOTHING", defaultEMASmoothing),
		AnomalyThreshold:      getEnvFloat("ANOMALY_THRESHOLD", defaultAnomalyThreshold),
		RecentRunsCap:         getEnvInt("RECENT_RUNS_CAP", defaultRecentRunsCap),
		SnapshotBootstrapFile: getEnvString("SNAPSHOT_BOOTSTRAP_FILE", ""),
		LogJSON:               getEnvBool("LOG_JSON", false),
	}

	if cfg.HistoryWindow <= 0 {
		return Config{}, fmt.Errorf("config: HISTORY_WINDOW must be positive, got %d", cfg.HistoryWindow)
	}
	if cfg.EMASmoothing <= 0 || cfg.EMASmoothing > 1 {
		return Config{}, fmt.Errorf("config: EMA_SMOOTHING must be in (0,1], got %v", cfg.EMASmoothing)
	}
	if cfg.RecentRunsCap <= 0 {
		return Config{}, fmt.Errorf("config: RECENT_RUNS_CAP must be positive, got %d", cfg.RecentRunsCap)
	}

	return cfg, nil
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}

	return f
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}

	return b
}
