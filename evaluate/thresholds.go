package evaluate

import "time"

// Level assignments for the location tree an evaluated response
// describes. The root sits at level 1; each nesting step below it adds
// one, matching SPEC_FULL.md §4.3's "level (1 at root, +1 per nesting)".
const (
	LevelRoot      = 1
	LevelClockSkew = 1
	LevelDatabase  = 2
	LevelSection   = 3 // a database's compute or storage sub-tree
	LevelPoolNode  = 4 // storage pool, or compute node
	LevelGroup     = 5
	LevelVDisk     = 6
	LevelPDisk     = 7
	LevelTablets   = 5 // per-(type,state,leader) tablet bucket, under a node
)

// Tablet classification thresholds (SPEC_FULL.md §4.3 "Tablets per node").
const (
	RestartsPerHourThreshold = 30
	DeadTabletWindow         = 5 * time.Minute
	TabletBucketCap          = 10
	BootModeDefault          = "Default"
)

// System-tablet response-time thresholds (§4.3 "System tablets").
const (
	SystemTabletOrangeMs = 5000
	SystemTabletYellowMs = 1000
)

// PDisk available/total ratio thresholds (§4.3 "PDisk").
const (
	PDiskRedRatio    = 0.06
	PDiskOrangeRatio = 0.09
	PDiskYellowRatio = 0.12
)

// Storage-usage thresholds (§4.3 "Pool, storage, database").
const (
	StorageUsageRedRatio    = 0.90
	StorageUsageOrangeRatio = 0.85
	StorageUsageYellowRatio = 0.75
)

// Clock-skew thresholds, in microseconds (§4.3 "Clock skew").
const (
	ClockSkewRedMicros    = 25000
	ClockSkewYellowMicros = 5000
)

// HiveSynchronizationPeriod is the uptime window during which the
// Dead-tablet rule is suppressed for tablets placed through that hive
// (§4.2 "Hive-synchronization window", redesigned per §9's resolved
// direction to compute true uptime rather than its inverse).
const HiveSynchronizationPeriod = 10 * time.Second

// pool-usage thresholds for per-node worker pools (§4.3 "Per-node pool
// stats"). System/IC/IO pools use the "critical" table; every other named
// pool uses the looser default table.
var criticalPools = map[string]bool{"System": true, "IC": true, "IO": true}

const (
	criticalPoolRed    = 0.99
	criticalPoolOrange = 0.95
	criticalPoolYellow = 0.90

	defaultPoolOrange = 0.99
	defaultPoolYellow = 0.95
)
