package aggregate

import "github.com/coredb-io/clustercheck/model"

// UnknownDatabaseName is the reserved location pools, groups, vdisks, and
// pdisks owned by no database are attached under, so their issues are
// never silently dropped (SPEC_FULL.md §3 invariant on StoragePool).
const UnknownDatabaseName = "unknown database"

// VDiskView pairs a vdisk with the pdisk it lives on, resolved once here
// so the evaluator never has to re-look-up PDiskLocationID per vdisk. ID
// is the group's declared vdisk id even when VDisk is nil (no sighting
// ever arrived for it), so the evaluator can still attach an issue to the
// right location.
type VDiskView struct {
	ID    string
	VDisk *model.VDisk
	PDisk *model.PDisk // nil if no pdisk sighting ever arrived
}

// GroupView pairs a group with its resolved vdisk views, in the group's
// declared VDiskIDs order (ring/domain/idx order from the owning slice).
type GroupView struct {
	Group  *model.Group
	VDisks []VDiskView
}

// PoolView pairs a storage pool with its resolved group views, drawn from
// AuthenticGroupIDs (the controller-confirmed set), not CandidateGroupIDs.
type PoolView struct {
	Pool   *model.StoragePool
	Groups []GroupView
}

// DatabaseView is one database's full compute+storage hierarchy, ready
// for the evaluator to walk without further lookups into ClusterModel.
type DatabaseView struct {
	Database     *model.Database
	Pools        []PoolView
	ComputeNodes []uint32
	Tablets      []*model.Tablet
}

// Result is the whole-model aggregation: every database's view, plus
// whatever storage the model knows about that no database claims.
type Result struct {
	Databases     []DatabaseView
	UnknownPools  []PoolView
	UnknownGroups []GroupView // groups referenced by no pool at all
}
