package request

import "github.com/coredb-io/clustercheck/orchestrator"

// fanOutEmpty reports whether req names any RPC at all. orchestrator
// keeps its own equivalent tally (FanOutRequest.count) private to size
// its response channel, so a caller outside that package checks field
// emptiness directly instead.
func fanOutEmpty(req orchestrator.FanOutRequest) bool {
	return len(req.NavigatePaths) == 0 &&
		len(req.NavigatePathIDs) == 0 &&
		!req.ListTenants &&
		len(req.TenantStatusPaths) == 0 &&
		len(req.DescribePaths) == 0 &&
		len(req.SelectGroupsPools) == 0 &&
		!req.BaseConfig &&
		len(req.HiveInfos) == 0 &&
		len(req.HiveNodeStatsHives) == 0 &&
		len(req.HiveStartTimeHives) == 0 &&
		len(req.StorageNodes) == 0 &&
		len(req.ComputeNodes) == 0
}

// mergeFanOut folds src's fields into dst in place. Builder.Ingest
// returns one FanOutRequest per response; a discovery round collects
// many responses concurrently, so their follow-ups accumulate here
// before the next round is issued.
func mergeFanOut(dst *orchestrator.FanOutRequest, src orchestrator.FanOutRequest) {
	dst.NavigatePaths = append(dst.NavigatePaths, src.NavigatePaths...)
	dst.NavigatePathIDs = append(dst.NavigatePathIDs, src.NavigatePathIDs...)
	dst.ListTenants = dst.ListTenants || src.ListTenants
	dst.TenantStatusPaths = append(dst.TenantStatusPaths, src.TenantStatusPaths...)
	dst.DescribePaths = append(dst.DescribePaths, src.DescribePaths...)
	dst.SelectGroupsPools = append(dst.SelectGroupsPools, src.SelectGroupsPools...)
	dst.BaseConfig = dst.BaseConfig || src.BaseConfig
	dst.HiveInfos = append(dst.HiveInfos, src.HiveInfos...)
	dst.HiveNodeStatsHives = append(dst.HiveNodeStatsHives, src.HiveNodeStatsHives...)
	dst.HiveStartTimeHives = append(dst.HiveStartTimeHives, src.HiveStartTimeHives...)
	dst.StorageNodes = append(dst.StorageNodes, src.StorageNodes...)
	dst.ComputeNodes = append(dst.ComputeNodes, src.ComputeNodes...)
}
