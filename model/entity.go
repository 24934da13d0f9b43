package model

import (
	"fmt"
	"time"
)

// PDiskLocationID derives the bit-stable pdisk id from its owning node and
// its node-local pdisk id.
func PDiskLocationID(nodeID uint32, pdiskID uint32) string {
	return fmt.Sprintf("%d-%d", nodeID, pdiskID)
}

// VDiskLocationID derives the bit-stable vdisk id from its group
// coordinates. Two responses describing the same vdisk always agree on
// this id regardless of which source (whiteboard or controller) reported
// it, which is what lets the model builder merge them.
func VDiskLocationID(groupID uint32, generation uint32, ring, domain, vdiskIdx uint32) string {
	return fmt.Sprintf("%d-%d-%d-%d-%d", groupID, generation, ring, domain, vdiskIdx)
}

// StaticPoolName is the synthetic storage pool name that pdisks/vdisks
// named only in the static blob-storage config are placed under.
const StaticPoolName = "static"

// Database is a tenant or the root domain: the top-level entity the
// evaluator produces a combined compute/storage verdict for.
type Database struct {
	Path             string
	HiveID           uint64
	SchemeShardID    uint64
	IsServerless     bool
	ResourcePath     string // shared database path, set only when IsServerless
	ComputeNodeIDs   []uint32
	StoragePoolNames []string
	StorageUsageBytes uint64
	StorageQuotaBytes uint64
}

// StoragePool is a named collection of storage groups. CandidateGroupIDs
// comes from ControllerSelectGroups; AuthenticGroupIDs is the subset the
// controller's base config actually confirms.
type StoragePool struct {
	Name              string
	Kind              string
	CandidateGroupIDs []uint32
	AuthenticGroupIDs []uint32
}

// Group is a storage group: a fixed set of vdisks replicated per its
// erasure species.
type Group struct {
	ID         uint32
	Generation uint32
	Erasure    ErasureSpecies
	VDiskIDs   []string
}

// VDisk is one replica slot within a group.
type VDisk struct {
	ID            string
	GroupID       uint32
	Generation    uint32
	Ring          uint32
	Domain        uint32
	VDiskIdx      uint32
	NodeID        uint32
	PDiskID       string
	State         VDiskState
	Replicated    bool
	DiskSpace     DiskSpaceFlag
	AllocatedSize uint64
}

// PDisk is a physical disk on a node, unified from whiteboard, controller
// base config, and static config sightings that share the same
// PDiskLocationID.
type PDisk struct {
	ID            string
	NodeID        uint32
	PDiskID       uint32
	Path          string
	Guid          uint64
	Category      uint64
	TotalSize     uint64
	AvailableSize uint64
	State         PDiskState
	DiskSpace     DiskSpaceFlag
}

// AvailableRatio returns AvailableSize/TotalSize, or 1 (fully available)
// when TotalSize is unknown so a zero-valued PDisk never reads as full.
func (p PDisk) AvailableRatio() float64 {
	if p.TotalSize == 0 {
		return 1
	}
	return float64(p.AvailableSize) / float64(p.TotalSize)
}

// PoolUsage is one worker pool's saturation sample from a node's system
// state (System, IC, IO, and any other named pool).
type PoolUsage struct {
	Name  string
	Usage float64 // fraction busy, 0..1
}

// SystemStateInfo is the flattened per-node whiteboard system-state
// payload, indexed by node id in ClusterModel.NodeByID and consulted by
// both the pool-stat and load-average rules without re-deriving it from
// Node.RawSystemState each time.
type SystemStateInfo struct {
	NodeID      uint32
	NumCPUs     int
	LoadAverage []float64
	PoolUsage   []PoolUsage
}

// Node is a single cluster process, either a static (storage) node or a
// dynamic (compute) node, or both.
type Node struct {
	ID              uint32
	Host            string
	Port            int
	IsStatic        bool
	RawSystemState  *SystemStateInfo
	ClockSkewPeerID uint32
	ClockSkewMicros int64
}

// TabletVolatileState is the hive-reported liveness state of a tablet.
type TabletVolatileState string

const (
	TabletVolatileRunning TabletVolatileState = "Running"
	TabletVolatileStopped TabletVolatileState = "Stopped"
	TabletVolatileBooting TabletVolatileState = "Booting"
)

// Tablet is one tablet placement as reported by the hive: a
// (node id, tablet id, follower id) triple tracked independently for
// leaders and followers.
type Tablet struct {
	NodeID            uint32
	TabletID          uint64
	FollowerID        uint32
	Type              string
	Leader            bool
	VolatileState     TabletVolatileState
	LastAlive         time.Time
	RestartsPerPeriod int
	BootMode          string
	ObjectDomain      string
	HiveID            uint64 // which hive reported this placement, for the sync-window check
}

// TabletRequest tracks one system-tablet RPC issued by the orchestrator
// for the lifetime of a self-check request.
type TabletRequest struct {
	RequestID       string
	TabletID        uint64
	Key             string
	StartTime       time.Time
	MaxResponseTime time.Duration
	Unresponsive    bool
}

// IssueRecord is one node of the issue DAG the evaluator produces and the
// merger consolidates. Reason holds the ids of child issues this record
// summarizes; after merge every id in Reason must resolve to a surviving
// record (referential closure).
type IssueRecord struct {
	ID       string   `json:"id"`
	Status   Status   `json:"status"`
	Message  string   `json:"message"`
	Location string   `json:"location,omitempty"`
	Level    int      `json:"level"`
	Type     string   `json:"type"`
	Tag      Tag      `json:"-"`
	Reason   []string `json:"reason,omitempty"`
	Count    int      `json:"count,omitempty"`
	Listed   int      `json:"listed,omitempty"`
}
