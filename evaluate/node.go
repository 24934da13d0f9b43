package evaluate

import (
	"fmt"
	"time"

	"github.com/coredb-io/clustercheck/model"
)

// evaluateComputeNode combines SPEC_FULL.md §4.3's "Per-node pool stats",
// "Load average", and "Tablets per node" rules for a single node.
func evaluateComputeNode(nodeID uint32, m *model.ClusterModel, tablets []*model.Tablet, now time.Time, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	state := m.NodeByID[nodeID]

	var pools []model.PoolUsage
	if state != nil {
		pools = state.PoolUsage
	}
	poolStatus, poolIssues := evaluatePoolStats(pools, location, level, nodeID, dbName)
	loadStatus, loadIssues := evaluateLoadAverage(state, location, level, nodeID, dbName)
	tabletStatus, tabletIssues := evaluateTabletsPerNode(nodeID, tablets, m.Hives, now, dbName, location, level+1)

	status := model.MaxStatus(model.MaxStatus(poolStatus, loadStatus), tabletStatus)
	var issues []*model.IssueRecord
	issues = append(issues, poolIssues...)
	issues = append(issues, loadIssues...)
	issues = append(issues, tabletIssues...)
	return status, issues
}

// evaluateComputeNodes walks every compute node a database owns, grouping
// its tablets by node id first so evaluateComputeNode never re-scans the
// full tablet list per node.
func evaluateComputeNodes(nodeIDs []uint32, tablets []*model.Tablet, m *model.ClusterModel, now time.Time, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	byNode := make(map[uint32][]*model.Tablet, len(nodeIDs))
	for _, t := range tablets {
		byNode[t.NodeID] = append(byNode[t.NodeID], t)
	}

	overall := model.StatusGreen
	var issues []*model.IssueRecord
	for _, id := range nodeIDs {
		nodeLoc := fmt.Sprintf("%s/%d", location, id)
		if m.UnavailableComputeNodes[id] {
			overall = model.MaxStatus(overall, model.StatusRed)
			issues = append(issues, newIssue(model.StatusRed, "Compute node is not available", nodeLoc, level+1, "NODE", model.TagNodeState, nil, dbName, "", fmt.Sprintf("%d", id)))
			continue
		}
		status, nodeIssues := evaluateComputeNode(id, m, byNode[id], now, dbName, nodeLoc, level+1)
		overall = model.MaxStatus(overall, status)
		issues = append(issues, nodeIssues...)
	}
	return overall, issues
}
