package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v2"

	"github.com/coredb-io/clustercheck/cache"
	"github.com/coredb-io/clustercheck/model"
)

// staticConfigDoc mirrors model.StaticConfig's shape for decoding; kept
// separate so the wire/file format (snake_case, optional YAML) doesn't
// leak into the model package.
type staticConfigDoc struct {
	PDiskIDs []string `json:"pdisk_ids" yaml:"pdisk_ids"`
	VDiskIDs []string `json:"vdisk_ids" yaml:"vdisk_ids"`
	GroupIDs []uint32 `json:"group_ids" yaml:"group_ids"`
}

// staticConfigTTL is deliberately long: the snapshot is meant to be read
// once at process bootstrap (SPEC_FULL.md §9) and held for the process
// lifetime, not re-read per request. The cache exists so a process that
// calls LoadStaticConfig more than once (tests, a future hot-reload path)
// gets the bootstrap read's result back instead of re-parsing the file.
const staticConfigTTL = 24 * time.Hour

// staticConfigCache memoizes parsed snapshots by file path using
// cache.Cache/cache.Keyer directly: a deterministic key, a TTL-bounded
// Set, a Get-before-work lookup.
var staticConfigCache = cache.NewMemoryCache(cache.Policy{DefaultTTL: staticConfigTTL, MaxTTL: staticConfigTTL})
var staticConfigKeyer = cache.NewDefaultKeyer()

// LoadStaticConfig reads the static blob-storage config snapshot named by
// SELFCHECK_STATIC_CONFIG_PATH, per SPEC_FULL.md §9's "read once from
// process state at request bootstrap; snapshot into the request model —
// do not re-read during evaluation." A .yaml/.yml extension selects YAML;
// anything else is decoded as JSON. An empty path is not an error: a
// process with no static config snapshot runs with static=nil, matching
// model.NewClusterModel's contract for tests that don't exercise it.
func LoadStaticConfig(path string) (*model.StaticConfig, error) {
	if path == "" {
		return nil, nil
	}

	ctx := context.Background()
	cacheKey, keyErr := staticConfigKeyer.Key("static_config", path)
	if keyErr == nil {
		if raw, ok := staticConfigCache.Get(ctx, cacheKey); ok {
			var cfg model.StaticConfig
			if err := json.Unmarshal(raw, &cfg); err == nil {
				return &cfg, nil
			}
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading static config %s: %v", ErrInvalidConfig, path, err)
	}

	var doc staticConfigDoc
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: parsing static config %s as yaml: %v", ErrInvalidConfig, path, err)
		}
	} else {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: parsing static config %s as json: %v", ErrInvalidConfig, path, err)
		}
	}

	cfg := &model.StaticConfig{
		PDiskIDs: doc.PDiskIDs,
		VDiskIDs: doc.VDiskIDs,
		GroupIDs: doc.GroupIDs,
	}

	if keyErr == nil {
		if encoded, merr := json.Marshal(cfg); merr == nil {
			_ = staticConfigCache.Set(ctx, cacheKey, encoded, staticConfigTTL)
		}
	}

	return cfg, nil
}
