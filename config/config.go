package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the self-check engine's process-wide settings, loaded once
// at bootstrap from environment variables (SPEC_FULL.md §10.3).
type Config struct {
	ListenAddr       string
	OperationTimeout time.Duration
	HiveSyncWindow   time.Duration
	LogLevel         string
	TracingExporter  string
	MetricsExporter  string
	StaticConfigPath string
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validTracingExporters = map[string]bool{"otlp": true, "jaeger": true, "stdout": true, "none": true}
var validMetricsExporters = map[string]bool{"otlp": true, "prometheus": true, "stdout": true, "none": true}

// Load reads SELFCHECK_* environment variables, falling back to the
// defaults SPEC_FULL.md §10.3 names for anything unset.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:       envOr("SELFCHECK_LISTEN_ADDR", ":8765"),
		OperationTimeout: 10 * time.Second,
		HiveSyncWindow:   10 * time.Second,
		LogLevel:         envOr("SELFCHECK_LOG_LEVEL", "info"),
		TracingExporter:  envOr("SELFCHECK_TRACING_EXPORTER", "none"),
		MetricsExporter:  envOr("SELFCHECK_METRICS_EXPORTER", "none"),
		StaticConfigPath: os.Getenv("SELFCHECK_STATIC_CONFIG_PATH"),
	}

	if raw := os.Getenv("SELFCHECK_OPERATION_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: SELFCHECK_OPERATION_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		cfg.OperationTimeout = d
	}
	if raw := os.Getenv("SELFCHECK_HIVE_SYNC_WINDOW"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: SELFCHECK_HIVE_SYNC_WINDOW: %v", ErrInvalidConfig, err)
		}
		cfg.HiveSyncWindow = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects zero/negative durations and unknown exporter or log
// level names, mirroring observe.Config.Validate().
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen addr is required", ErrInvalidConfig)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("%w: operation timeout must be positive, got %s", ErrInvalidConfig, c.OperationTimeout)
	}
	if c.HiveSyncWindow <= 0 {
		return fmt.Errorf("%w: hive sync window must be positive, got %s", ErrInvalidConfig, c.HiveSyncWindow)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if !validTracingExporters[c.TracingExporter] {
		return fmt.Errorf("%w: unknown tracing exporter %q", ErrInvalidConfig, c.TracingExporter)
	}
	if !validMetricsExporters[c.MetricsExporter] {
		return fmt.Errorf("%w: unknown metrics exporter %q", ErrInvalidConfig, c.MetricsExporter)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
