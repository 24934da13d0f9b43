package orchestrator

import "time"

// HiveInfoRequest names one hive to query, with or without follower
// placements.
type HiveInfoRequest struct {
	HiveID        uint64
	WithFollowers bool
}

// FanOutRequest describes the whole batch of outbound RPCs one self-check
// request needs. The model builder assembles this incrementally as early
// responses reveal more targets to query (e.g. DescribeScheme discovering
// pool names that need request_select_groups); Run is called once per
// discovery round rather than once per whole request.
type FanOutRequest struct {
	// Deadline bounds every RPC issued by this call; it is the request's
	// single wall-clock deadline, not a per-RPC timeout.
	Deadline time.Duration

	NavigatePaths      []string
	NavigatePathIDs    []uint64
	ListTenants        bool
	TenantStatusPaths  []string
	DescribePaths      []string
	SelectGroupsPools  []string
	BaseConfig         bool
	HiveInfos          []HiveInfoRequest
	HiveNodeStatsHives []uint64
	HiveStartTimeHives []uint64

	// StorageNodes triggers the full storage-node whiteboard subset
	// (system state, vdisk state, pdisk state, bsgroup state).
	StorageNodes []uint32
	// ComputeNodes triggers only the system-state whiteboard call.
	ComputeNodes []uint32
}

// count returns the total number of RPCs this batch will issue, used to
// size the outstanding-request counter and the response channel.
func (r FanOutRequest) count() int {
	n := len(r.NavigatePaths) + len(r.NavigatePathIDs) + len(r.TenantStatusPaths) +
		len(r.DescribePaths) + len(r.SelectGroupsPools) + len(r.HiveInfos) +
		len(r.HiveNodeStatsHives) + len(r.HiveStartTimeHives) + len(r.ComputeNodes)
	if r.ListTenants {
		n++
	}
	if r.BaseConfig {
		n++
	}
	// Each storage node triggers 4 whiteboard calls (system, vdisk, pdisk, bsgroup).
	n += len(r.StorageNodes) * 4
	return n
}
