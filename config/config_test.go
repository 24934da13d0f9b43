package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SELFCHECK_LISTEN_ADDR", "")
	t.Setenv("SELFCHECK_OPERATION_TIMEOUT", "")
	t.Setenv("SELFCHECK_HIVE_SYNC_WINDOW", "")
	t.Setenv("SELFCHECK_LOG_LEVEL", "")
	t.Setenv("SELFCHECK_TRACING_EXPORTER", "")
	t.Setenv("SELFCHECK_METRICS_EXPORTER", "")
	t.Setenv("SELFCHECK_STATIC_CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.ListenAddr != ":8765" {
		t.Fatalf("ListenAddr = %q, want :8765", cfg.ListenAddr)
	}
	if cfg.OperationTimeout.Seconds() != 10 {
		t.Fatalf("OperationTimeout = %v, want 10s", cfg.OperationTimeout)
	}
	if cfg.HiveSyncWindow.Seconds() != 10 {
		t.Fatalf("HiveSyncWindow = %v, want 10s", cfg.HiveSyncWindow)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("SELFCHECK_OPERATION_TIMEOUT", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want error for malformed duration")
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := Config{
		ListenAddr: ":8765", OperationTimeout: 1, HiveSyncWindow: 1,
		LogLevel: "verbose", TracingExporter: "none", MetricsExporter: "none",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for unknown log level")
	}
}

func TestValidateRejectsNonPositiveTimeout(t *testing.T) {
	cfg := Config{
		ListenAddr: ":8765", OperationTimeout: 0, HiveSyncWindow: 1,
		LogLevel: "info", TracingExporter: "none", MetricsExporter: "none",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() error = nil, want error for zero timeout")
	}
}

func TestLoadStaticConfigEmptyPathReturnsNil(t *testing.T) {
	sc, err := LoadStaticConfig("")
	if err != nil {
		t.Fatalf("LoadStaticConfig(\"\") error = %v, want nil", err)
	}
	if sc != nil {
		t.Fatalf("LoadStaticConfig(\"\") = %+v, want nil", sc)
	}
}

func TestLoadStaticConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/static.json"
	content := `{"pdisk_ids":["1-1"],"vdisk_ids":["1-1-0-0-0"],"group_ids":[1,2]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	sc, err := LoadStaticConfig(path)
	if err != nil {
		t.Fatalf("LoadStaticConfig() error = %v, want nil", err)
	}
	if len(sc.GroupIDs) != 2 {
		t.Fatalf("GroupIDs = %v, want 2 entries", sc.GroupIDs)
	}
}

func TestLoadStaticConfigServesSnapshotFromCacheAfterFileRemoved(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/static-cached.json"
	content := `{"pdisk_ids":["9-1"],"vdisk_ids":["9-1-0-0-0"],"group_ids":[9]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	first, err := LoadStaticConfig(path)
	if err != nil {
		t.Fatalf("LoadStaticConfig() error = %v, want nil", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("os.Remove: %v", err)
	}

	second, err := LoadStaticConfig(path)
	if err != nil {
		t.Fatalf("LoadStaticConfig() after removal error = %v, want nil (snapshot is bootstrap-read-once, served from cache)", err)
	}
	if len(second.GroupIDs) != len(first.GroupIDs) || second.GroupIDs[0] != first.GroupIDs[0] {
		t.Fatalf("GroupIDs = %v, want %v from the cached snapshot", second.GroupIDs, first.GroupIDs)
	}
}
