package builder

import (
	"time"

	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/orchestrator"
)

// unknownDatabaseName is where pools referenced by no known database
// surface, so the evaluator never silently drops storage issues.
const unknownDatabaseName = "unknown database"

// Builder owns the single ClusterModel a self-check request builds up as
// orchestrator responses arrive, plus the bookkeeping needed to decide
// what follow-up RPCs each response unlocks (SPEC_FULL.md §4.2).
type Builder struct {
	Model *model.ClusterModel

	requestedSelectGroups map[string]bool
	requestedStorageNode  map[uint32]bool
	requestedComputeNode  map[uint32]bool
	requestedNavigate     map[string]bool
	seenResourceDomains   map[uint64]bool
}

// New returns a Builder over an empty model seeded with the process-wide
// static blob-storage config snapshot. static may be nil.
func New(static *model.StaticConfig) *Builder {
	b := &Builder{
		Model:                 model.NewClusterModel(static),
		requestedSelectGroups: make(map[string]bool),
		requestedStorageNode:  make(map[uint32]bool),
		requestedComputeNode:  make(map[uint32]bool),
		requestedNavigate:     make(map[string]bool),
		seenResourceDomains:   make(map[uint64]bool),
	}
	if static != nil {
		pool := b.Model.PoolOrCreate(model.StaticPoolName)
		pool.Kind = "static"
		pool.CandidateGroupIDs = append(pool.CandidateGroupIDs, static.GroupIDs...)
		pool.AuthenticGroupIDs = append(pool.AuthenticGroupIDs, static.GroupIDs...)
	}
	return b
}

// databaseOrCreate returns the Database at path, creating it (with empty
// pool/compute sets) on first sighting.
func (b *Builder) databaseOrCreate(path string) *model.Database {
	db, ok := b.Model.Databases[path]
	if !ok {
		db = &model.Database{Path: path}
		b.Model.Databases[path] = db
	}
	return db
}

// Ingest fuses one orchestrator response into the model and returns the
// follow-up RPCs this response's data unlocked — e.g. a DescribeScheme
// response naming pools unlocks request_select_groups for each pool.
// follow.count() is zero when there is nothing further to discover.
func (b *Builder) Ingest(resp orchestrator.Response) orchestrator.FanOutRequest {
	var follow orchestrator.FanOutRequest

	switch resp.Kind {
	case orchestrator.KindNavigate:
		b.ingestNavigate(resp, &follow)
	case orchestrator.KindListTenants:
		b.ingestListTenants(resp, &follow)
	case orchestrator.KindTenantStatus:
		b.ingestTenantStatus(resp)
	case orchestrator.KindDescribe:
		b.ingestDescribe(resp, &follow)
	case orchestrator.KindSelectGroups:
		b.ingestSelectGroups(resp)
	case orchestrator.KindBaseConfig:
		b.ingestBaseConfig(resp, &follow)
	case orchestrator.KindHiveInfo:
		b.ingestHiveInfo(resp)
	case orchestrator.KindHiveNodeStats:
		b.ingestHiveNodeStats(resp)
	case orchestrator.KindHiveStartTime:
		b.ingestHiveStartTime(resp)
	case orchestrator.KindSystemState:
		b.ingestSystemState(resp)
	case orchestrator.KindVDiskState:
		b.ingestVDiskState(resp)
	case orchestrator.KindPDiskState:
		b.ingestPDiskState(resp)
	case orchestrator.KindBSGroupState:
		b.ingestBSGroupState(resp)
	}

	return follow
}

func (b *Builder) ingestNavigate(resp orchestrator.Response, follow *orchestrator.FanOutRequest) {
	if resp.Err != nil {
		return // service-level navigate failure: no database entry, per §7
	}
	nav := resp.Navigate
	path := resp.Path
	if path == "" {
		path = nav.Path
	}
	db := b.databaseOrCreate(path)
	db.HiveID = nav.HiveID
	db.SchemeShardID = nav.SchemeShardID

	if nav.IsServerless() && !b.seenResourceDomains[nav.ResourcesDomainKey] {
		b.seenResourceDomains[nav.ResourcesDomainKey] = true
		db.IsServerless = true
		follow.NavigatePathIDs = append(follow.NavigatePathIDs, nav.ResourcesDomainKey)
	}
}

func (b *Builder) ingestListTenants(resp orchestrator.Response, follow *orchestrator.FanOutRequest) {
	if resp.Err != nil {
		return
	}
	for _, path := range resp.Tenants {
		if b.requestedNavigate[path] {
			continue
		}
		b.requestedNavigate[path] = true
		follow.NavigatePaths = append(follow.NavigatePaths, path)
	}
}

func (b *Builder) ingestTenantStatus(resp orchestrator.Response) {
	if resp.Err != nil {
		return
	}
	db := b.databaseOrCreate(resp.Path)
	if resp.TenantStatus.ServerlessResources != nil {
		db.IsServerless = true
		db.ResourcePath = resp.TenantStatus.ServerlessResources.SharedDatabasePath
	}
}

func (b *Builder) ingestDescribe(resp orchestrator.Response, follow *orchestrator.FanOutRequest) {
	if resp.Err != nil {
		return
	}
	db := b.databaseOrCreate(resp.Path)
	db.StorageUsageBytes = resp.Describe.StorageUsageBytes
	db.StorageQuotaBytes = resp.Describe.StorageQuotaBytes

	for _, pool := range resp.Describe.StoragePools {
		existing := b.Model.PoolOrCreate(pool.Name)
		existing.Kind = pool.Kind
		db.StoragePoolNames = append(db.StoragePoolNames, pool.Name)

		if b.requestedSelectGroups[pool.Name] {
			continue
		}
		b.requestedSelectGroups[pool.Name] = true
		follow.SelectGroupsPools = append(follow.SelectGroupsPools, pool.Name)
	}
}

func (b *Builder) ingestSelectGroups(resp orchestrator.Response) {
	if resp.Err != nil {
		return
	}
	pool := b.Model.PoolOrCreate(resp.Pool)
	pool.AuthenticGroupIDs = resp.GroupIDs
	if len(pool.CandidateGroupIDs) == 0 {
		pool.CandidateGroupIDs = resp.GroupIDs
	}
}

func (b *Builder) ingestBaseConfig(resp orchestrator.Response, follow *orchestrator.FanOutRequest) {
	if resp.Err != nil {
		return
	}
	for _, g := range resp.BaseConfig.Groups {
		b.Model.UpsertGroup(g)
	}
	for _, v := range resp.BaseConfig.VDisks {
		vv := v
		b.Model.VDisks[v.ID] = &vv
	}
	for _, p := range resp.BaseConfig.PDisks {
		b.Model.UpsertPDisk(p)
		if b.requestedStorageNode[p.NodeID] {
			continue
		}
		b.requestedStorageNode[p.NodeID] = true
		follow.StorageNodes = append(follow.StorageNodes, p.NodeID)
		n := b.Model.UpsertNode(p.NodeID)
		n.IsStatic = true
	}
}

func (b *Builder) ingestHiveInfo(resp orchestrator.Response) {
	if resp.Err != nil {
		return
	}
	for _, t := range resp.HiveTablets {
		tablet := &model.Tablet{
			NodeID:            t.NodeID,
			TabletID:          t.TabletID,
			FollowerID:        t.FollowerID,
			Type:              t.Type,
			Leader:            t.FollowerID == 0,
			VolatileState:     t.VolatileState,
			LastAlive:         time.UnixMilli(t.LastAlive),
			RestartsPerPeriod: t.RestartsPerPeriod,
			BootMode:          t.BootMode,
			ObjectDomain:      t.ObjectDomain,
			HiveID:            resp.HiveID,
		}
		b.Model.Tablets[model.TabletKey{TabletID: t.TabletID, FollowerID: t.FollowerID}] = tablet
	}
}

func (b *Builder) ingestHiveNodeStats(resp orchestrator.Response) {
	if resp.Err != nil {
		return
	}
	for _, stat := range resp.HiveNodeStats {
		// Registers the node so downstream rules see it even if no base-config
		// pdisk or navigate response ever mentions it; IsStatic is left as
		// whatever base config already determined, or false (compute) by
		// default from UpsertNode.
		b.Model.UpsertNode(stat.NodeID)
	}
}

func (b *Builder) ingestHiveStartTime(resp orchestrator.Response) {
	if resp.Err != nil {
		return
	}
	b.Model.Hives[resp.HiveID] = &model.HiveState{
		HiveID:    resp.HiveID,
		StartTime: time.UnixMilli(resp.HiveStartTime),
	}
}

func (b *Builder) markNodeUnavailable(nodeID uint32, isStorage bool) {
	if isStorage {
		b.Model.UnavailableStorageNodes[nodeID] = true
	} else {
		b.Model.UnavailableComputeNodes[nodeID] = true
	}
}

func (b *Builder) ingestSystemState(resp orchestrator.Response) {
	if resp.Err != nil {
		b.markNodeUnavailable(resp.NodeID, resp.IsStorageNode)
		return
	}
	b.Model.SetSystemState(resp.NodeID, resp.SystemState)
}

func (b *Builder) ingestVDiskState(resp orchestrator.Response) {
	if resp.Err != nil {
		b.markNodeUnavailable(resp.NodeID, true)
		return
	}
	for _, v := range resp.VDisks {
		vv := v
		b.Model.VDisks[v.ID] = &vv
	}
}

func (b *Builder) ingestPDiskState(resp orchestrator.Response) {
	if resp.Err != nil {
		b.markNodeUnavailable(resp.NodeID, true)
		return
	}
	for _, p := range resp.PDisks {
		b.Model.UpsertPDisk(p)
	}
}

func (b *Builder) ingestBSGroupState(resp orchestrator.Response) {
	if resp.Err != nil {
		b.markNodeUnavailable(resp.NodeID, true)
		return
	}
	for _, g := range resp.Groups {
		b.Model.UpsertGroup(g)
	}
}

// RequestComputeNodeOnce returns a FanOutRequest for nodeID's
// compute-node whiteboard call if it hasn't already been requested this
// build, and an empty one otherwise. Mirrors the orchestrator-level
// singleflight dedup one layer up, at the discovery-decision level
// instead of the in-flight-call level.
func (b *Builder) RequestComputeNodeOnce(nodeID uint32) orchestrator.FanOutRequest {
	if b.requestedComputeNode[nodeID] {
		return orchestrator.FanOutRequest{}
	}
	b.requestedComputeNode[nodeID] = true
	return orchestrator.FanOutRequest{ComputeNodes: []uint32{nodeID}}
}
