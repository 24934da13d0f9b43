package evaluate

import (
	"fmt"

	"github.com/coredb-io/clustercheck/model"
)

// poolStatStatus classifies one pool's fraction-busy sample per
// SPEC_FULL.md §4.3 "Per-node pool stats": System/IC/IO use a tighter
// table than every other named pool.
func poolStatStatus(name string, usage float64) model.Status {
	if criticalPools[name] {
		switch {
		case usage >= criticalPoolRed:
			return model.StatusRed
		case usage >= criticalPoolOrange:
			return model.StatusOrange
		case usage >= criticalPoolYellow:
			return model.StatusYellow
		default:
			return model.StatusGreen
		}
	}
	switch {
	case usage >= defaultPoolOrange:
		return model.StatusOrange
	case usage >= defaultPoolYellow:
		return model.StatusYellow
	default:
		return model.StatusGreen
	}
}

// evaluatePoolStats emits one issue per pool whose usage classifies
// above GREEN and returns the max status across all pools.
func evaluatePoolStats(pools []model.PoolUsage, location string, level int, nodeID uint32, dbName string) (model.Status, []*model.IssueRecord) {
	overall := model.StatusGreen
	var issues []*model.IssueRecord
	for _, p := range pools {
		status := poolStatStatus(p.Name, p.Usage)
		overall = model.MaxStatus(overall, status)
		if status == model.StatusGreen {
			continue
		}
		msg := fmt.Sprintf("Pool %s usage is too high", p.Name)
		issues = append(issues, newIssue(status, msg, location, level, "NODE", model.TagOverloadState, nil, dbName, "", fmt.Sprintf("%d", nodeID)))
	}
	return overall, issues
}

// evaluateLoadAverage applies SPEC_FULL.md §4.3 "Load average":
// load_average[0] > num_cpus is YELLOW, else GREEN.
func evaluateLoadAverage(state *model.SystemStateInfo, location string, level int, nodeID uint32, dbName string) (model.Status, []*model.IssueRecord) {
	if state == nil || len(state.LoadAverage) == 0 {
		return model.StatusGreen, nil
	}
	if state.LoadAverage[0] <= float64(state.NumCPUs) {
		return model.StatusGreen, nil
	}
	issue := newIssue(model.StatusYellow, "Load average is too high", location, level, "NODE", model.TagOverloadState, nil, dbName, "", fmt.Sprintf("%d", nodeID))
	return model.StatusYellow, []*model.IssueRecord{issue}
}
