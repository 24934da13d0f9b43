package transport

import (
	"context"

	"github.com/coredb-io/clustercheck/model"
)

// NavigateResult is the response to a scheme-cache navigate request.
type NavigateResult struct {
	Path                string
	DomainKey           uint64
	ResourcesDomainKey  uint64
	HiveID              uint64
	SchemeShardID       uint64
}

// IsServerless reports whether the path's resources live in a different
// domain than the path itself, meaning compute for this database is
// served by the referenced shared database.
func (r NavigateResult) IsServerless() bool {
	return r.ResourcesDomainKey != 0 && r.ResourcesDomainKey != r.DomainKey
}

// SchemeCacheClient resolves a path (or a cached path id) to the domain
// coordinates the model builder needs to place the database.
type SchemeCacheClient interface {
	Navigate(ctx context.Context, path string) (NavigateResult, error)
	NavigateByID(ctx context.Context, pathID uint64) (NavigateResult, error)
}

// TenantStatus is the response to a tenant get-status request.
type TenantStatus struct {
	Path                string
	ServerlessResources *ServerlessResources
}

// ServerlessResources names the shared database a serverless database's
// resources live in.
type ServerlessResources struct {
	SharedDatabasePath string
}

// TenantClient lists and describes tenant databases.
type TenantClient interface {
	ListTenants(ctx context.Context) ([]string, error)
	TenantStatus(ctx context.Context, path string) (TenantStatus, error)
}

// DescribeResult is the response to a scheme-shard describe request.
type DescribeResult struct {
	StoragePools      []model.StoragePool
	StorageUsageBytes uint64
	StorageQuotaBytes uint64
}

// SchemeShardClient describes the database's declared storage pools and
// usage.
type SchemeShardClient interface {
	Describe(ctx context.Context, path string) (DescribeResult, error)
}

// BaseConfigResult is the controller's canonical view of the storage
// layer: every pdisk, vdisk (vslot), and group it currently knows about.
type BaseConfigResult struct {
	PDisks []model.PDisk
	VDisks []model.VDisk
	Groups []model.Group
}

// BlobStorageControllerClient is the canonical source of pdisk/vdisk/group
// placement and pool membership.
type BlobStorageControllerClient interface {
	SelectGroups(ctx context.Context, pool string) ([]uint32, error)
	BaseConfig(ctx context.Context) (BaseConfigResult, error)
}

// HiveTabletInfo is one tablet placement as reported by hive-info.
type HiveTabletInfo struct {
	TabletID          uint64
	FollowerID        uint32
	Type              string
	NodeID            uint32
	VolatileState     model.TabletVolatileState
	RestartsPerPeriod int
	LastAlive         int64 // unix millis
	BootMode          string
	ObjectDomain      string
}

// HiveNodeStat is one entry of hive-node-stats: which object-domain a node
// belongs to from the hive's point of view.
type HiveNodeStat struct {
	NodeID     uint32
	NodeDomain string
}

// HiveClient reports tablet placement and node membership for a single
// hive. HiveID identifies which hive to query; a cluster may have more
// than one (the root hive plus any per-database hive).
type HiveClient interface {
	HiveInfo(ctx context.Context, hiveID uint64, withFollowers bool) ([]HiveTabletInfo, error)
	HiveNodeStats(ctx context.Context, hiveID uint64) ([]HiveNodeStat, error)
	// StartTime returns the hive's own process start time, used to derive
	// whether it is still inside its synchronization window.
	StartTime(ctx context.Context, hiveID uint64) (int64, error)
}

// WhiteboardClient is the per-node direct-transport service queried for a
// node's own live state. Every method is scoped to one node id; the
// orchestrator issues one call per node per method it needs.
type WhiteboardClient interface {
	SystemState(ctx context.Context, nodeID uint32) (*model.SystemStateInfo, error)
	VDiskState(ctx context.Context, nodeID uint32) ([]model.VDisk, error)
	PDiskState(ctx context.Context, nodeID uint32) ([]model.PDisk, error)
	BSGroupState(ctx context.Context, nodeID uint32) ([]model.Group, error)
}
