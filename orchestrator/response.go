package orchestrator

import (
	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/transport"
)

// ResponseKind discriminates which request type a Response answers, so
// the model builder's dispatch switch doesn't need type assertions on
// every optional field.
type ResponseKind int

const (
	KindNavigate ResponseKind = iota
	KindListTenants
	KindTenantStatus
	KindDescribe
	KindSelectGroups
	KindBaseConfig
	KindHiveInfo
	KindHiveNodeStats
	KindHiveStartTime
	KindSystemState
	KindVDiskState
	KindPDiskState
	KindBSGroupState
)

// Response is one completed (or failed) RPC. Exactly the field(s)
// matching Kind are populated on success; Err is set on failure and every
// other field is left zero-valued.
type Response struct {
	Kind ResponseKind
	Err  error

	// Correlation context, populated for request kinds it applies to.
	Path    string
	Pool    string
	HiveID  uint64
	NodeID  uint32
	IsStorageNode bool

	Navigate      transport.NavigateResult
	Tenants       []string
	TenantStatus  transport.TenantStatus
	Describe      transport.DescribeResult
	GroupIDs      []uint32
	BaseConfig    transport.BaseConfigResult
	HiveTablets   []transport.HiveTabletInfo
	HiveNodeStats []transport.HiveNodeStat
	HiveStartTime int64

	SystemState *model.SystemStateInfo
	VDisks      []model.VDisk
	PDisks      []model.PDisk
	Groups      []model.Group
}
