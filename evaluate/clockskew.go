package evaluate

import (
	"fmt"
	"sort"

	"github.com/coredb-io/clustercheck/model"
)

// evaluateClockSkew applies SPEC_FULL.md §4.3 "Clock skew": for every
// node with a declared peer, emit at most one NodeState issue per pair by
// visiting each node once and marking its peer visited too, then — if any
// pair skewed — roll those up into exactly one TagSyncState issue carrying
// the worst child status, mirroring the original's per-pair
// FillClockSkewResult feeding one FillNodesSyncResult ReportWithMaxChildStatus.
func evaluateClockSkew(nodes map[uint32]*model.Node, dbName string) (model.Status, []*model.IssueRecord) {
	visited := make(map[uint32]bool, len(nodes))
	overall := model.StatusGreen
	var nodeIssues []*model.IssueRecord

	var ids []uint32
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if visited[id] {
			continue
		}
		n := nodes[id]
		if n.ClockSkewPeerID == 0 {
			continue
		}
		visited[id] = true
		visited[n.ClockSkewPeerID] = true

		micros := n.ClockSkewMicros
		if micros < 0 {
			micros = -micros
		}
		var status model.Status
		var message string
		switch {
		case micros > ClockSkewRedMicros:
			status, message = model.StatusRed, "Time difference is more than 25 ms"
		case micros > ClockSkewYellowMicros:
			status, message = model.StatusYellow, "Time difference is more than 5 ms"
		default:
			status = model.StatusGreen
		}
		overall = model.MaxStatus(overall, status)
		if status == model.StatusGreen {
			continue
		}
		nodeIssues = append(nodeIssues, newIssue(status, message, "", LevelClockSkew, "NODE", model.TagNodeState, nil, dbName, "", fmt.Sprintf("%d", id), fmt.Sprintf("%d", n.ClockSkewPeerID)))
	}

	if len(nodeIssues) == 0 {
		return overall, nil
	}

	syncIssue := newIssue(overall, "Time difference exceeded", "", LevelClockSkew, "NODE", model.TagSyncState, issueIDs(nodeIssues), dbName, "")
	return overall, append([]*model.IssueRecord{syncIssue}, nodeIssues...)
}
