package model

import "time"

// TabletKey identifies one tablet placement. Leaders and followers of the
// same tablet id are tracked as distinct entries.
type TabletKey struct {
	TabletID   uint64
	FollowerID uint32
}

// HiveState tracks the one piece of hive-level state the evaluator needs
// outside the tablet placements themselves: when the hive started, used to
// derive whether it is still inside its synchronization window.
type HiveState struct {
	HiveID    uint64
	StartTime time.Time
}

// Uptime returns how long the hive has been running as of now.
func (h HiveState) Uptime(now time.Time) time.Duration {
	return now.Sub(h.StartTime)
}

// StaticConfig is the appdata-provided static blob-storage config
// snapshot, decoded once at process bootstrap (see package config) and
// shared read-only across every request built against this process, so
// a request never needs to re-read it. The builder creates each
// request's synthetic static pool from GroupIDs.
type StaticConfig struct {
	PDiskIDs []string
	VDiskIDs []string
	GroupIDs []uint32
}

// ClusterModel is the request-scoped aggregate the model builder
// populates as fan-out responses arrive and the evaluator walks read-only
// afterward. A single goroutine owns every mutation; see the concurrency
// notes in package doc.
type ClusterModel struct {
	Databases map[string]*Database
	Pools     map[string]*StoragePool
	Groups    map[uint32]*Group
	VDisks    map[string]*VDisk
	PDisks    map[string]*PDisk
	Nodes     map[uint32]*Node

	// NodeByID is the flattened node id -> system state index used by the
	// per-node pool-stat and load-average rules, kept alongside the raw
	// per-node whiteboard payload on Node.RawSystemState so those rules
	// don't re-derive it from the raw response on every evaluation.
	NodeByID map[uint32]*SystemStateInfo

	Tablets        map[TabletKey]*Tablet
	TabletRequests map[string]*TabletRequest
	Hives          map[uint64]*HiveState

	UnavailableStorageNodes map[uint32]bool
	UnavailableComputeNodes map[uint32]bool

	// StaticConfig is a reference into the process-wide snapshot, not a
	// per-request copy; the model builder never mutates it.
	StaticConfig *StaticConfig

	Issues []*IssueRecord
}

// NewClusterModel returns an empty model ready for the fan-out
// orchestrator's response handlers to populate. static may be nil for
// tests that don't exercise the static-pool path.
func NewClusterModel(static *StaticConfig) *ClusterModel {
	return &ClusterModel{
		Databases:               make(map[string]*Database),
		Pools:                   make(map[string]*StoragePool),
		Groups:                  make(map[uint32]*Group),
		VDisks:                  make(map[string]*VDisk),
		PDisks:                  make(map[string]*PDisk),
		Nodes:                   make(map[uint32]*Node),
		NodeByID:                make(map[uint32]*SystemStateInfo),
		Tablets:                 make(map[TabletKey]*Tablet),
		TabletRequests:          make(map[string]*TabletRequest),
		Hives:                   make(map[uint64]*HiveState),
		UnavailableStorageNodes: make(map[uint32]bool),
		UnavailableComputeNodes: make(map[uint32]bool),
		StaticConfig:            static,
	}
}

// UpsertGroup inserts g, or replaces the existing group with the same id
// if g's generation is strictly newer. Ties and older generations are
// discarded whole: the model never merges fields across generations,
// matching the "latest generation wins" rule.
func (m *ClusterModel) UpsertGroup(g Group) {
	existing, ok := m.Groups[g.ID]
	if !ok || g.Generation > existing.Generation {
		gg := g
		m.Groups[g.ID] = &gg
	}
}

// UpsertNode returns the Node for id, creating it if this is the first
// sighting. It does not touch NodeByID; SetSystemState keeps that index
// in sync when the raw system state is attached.
func (m *ClusterModel) UpsertNode(id uint32) *Node {
	n, ok := m.Nodes[id]
	if !ok {
		n = &Node{ID: id}
		m.Nodes[id] = n
	}
	return n
}

// SetSystemState attaches the whiteboard system-state payload to a node
// and refreshes the flattened index rules consult directly.
func (m *ClusterModel) SetSystemState(nodeID uint32, s *SystemStateInfo) {
	n := m.UpsertNode(nodeID)
	n.RawSystemState = s
	m.NodeByID[nodeID] = s
}

// UpsertPDisk merges a pdisk sighting into the model, unifying whiteboard,
// controller base-config, and static-config views that share the same
// PDiskLocationID. Each non-zero field of a later sighting overwrites the
// stored value; a zero-valued field leaves the stored value in place, so
// a later sighting never blanks what an earlier one filled in.
func (m *ClusterModel) UpsertPDisk(p PDisk) *PDisk {
	existing, ok := m.PDisks[p.ID]
	if !ok {
		pp := p
		m.PDisks[p.ID] = &pp
		return &pp
	}
	if p.Path != "" {
		existing.Path = p.Path
	}
	if p.Guid != 0 {
		existing.Guid = p.Guid
	}
	if p.Category != 0 {
		existing.Category = p.Category
	}
	if p.TotalSize != 0 {
		existing.TotalSize = p.TotalSize
	}
	if p.AvailableSize != 0 {
		existing.AvailableSize = p.AvailableSize
	}
	if p.State != "" {
		existing.State = p.State
	}
	if p.DiskSpace != "" {
		existing.DiskSpace = p.DiskSpace
	}
	return existing
}

// PoolOrCreate returns the named storage pool, creating an empty one on
// first reference. Pools referenced by no database stay in this map and
// are surfaced under "unknown database" by the evaluator, not filtered
// out here.
func (m *ClusterModel) PoolOrCreate(name string) *StoragePool {
	p, ok := m.Pools[name]
	if !ok {
		p = &StoragePool{Name: name}
		m.Pools[name] = p
	}
	return p
}
