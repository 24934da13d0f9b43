package evaluate

import (
	"fmt"
	"sort"
	"time"

	"github.com/coredb-io/clustercheck/model"
)

// tabletBucketState is the derived per-tablet classification SPEC_FULL.md
// §4.3 "Tablets per node" groups by.
type tabletBucketState int

const (
	tabletGood tabletBucketState = iota
	tabletStopped
	tabletRestartsTooOften
	tabletDead
)

type tabletBucketKey struct {
	Type   string
	State  tabletBucketState
	Leader bool
}

// hiveInSyncWindow reports whether hiveID's uptime as of now is still
// under HiveSynchronizationPeriod. A hive this evaluation never saw a
// start-time response for is treated as not in the window, matching the
// original's fail-open behavior when hive state is simply unknown.
func hiveInSyncWindow(hives map[uint64]*model.HiveState, hiveID uint64, now time.Time) bool {
	h, ok := hives[hiveID]
	if !ok {
		return false
	}
	return h.Uptime(now) < HiveSynchronizationPeriod
}

func classifyTablet(t *model.Tablet, hives map[uint64]*model.HiveState, now time.Time) tabletBucketState {
	if t.VolatileState == model.TabletVolatileStopped {
		return tabletStopped
	}
	if t.RestartsPerPeriod >= RestartsPerHourThreshold {
		return tabletRestartsTooOften
	}
	dead := t.VolatileState != model.TabletVolatileRunning &&
		now.Sub(t.LastAlive) >= DeadTabletWindow &&
		t.BootMode == BootModeDefault &&
		!hiveInSyncWindow(hives, t.HiveID, now)
	if dead {
		return tabletDead
	}
	return tabletGood
}

// evaluateTabletsPerNode buckets a node's tablets by (type, derived
// state, leader flag) and emits at most one issue per bucket, listing at
// most TabletBucketCap tablet ids.
func evaluateTabletsPerNode(nodeID uint32, tablets []*model.Tablet, hives map[uint64]*model.HiveState, now time.Time, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	buckets := make(map[tabletBucketKey][]*model.Tablet)
	var keys []tabletBucketKey
	for _, t := range tablets {
		key := tabletBucketKey{Type: t.Type, State: classifyTablet(t, hives, now), Leader: t.Leader}
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], t)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		if keys[i].State != keys[j].State {
			return keys[i].State < keys[j].State
		}
		return !keys[i].Leader && keys[j].Leader
	})

	overall := model.StatusGreen
	var issues []*model.IssueRecord
	for _, key := range keys {
		members := buckets[key]
		var status model.Status
		var message string
		switch key.State {
		case tabletGood, tabletStopped:
			continue
		case tabletRestartsTooOften:
			status = model.StatusRed
			message = "Tablets are restarting too often"
		case tabletDead:
			if key.Leader {
				status = model.StatusRed
				message = "Tablets are dead"
			} else {
				status = model.StatusYellow
				message = "Followers are dead"
			}
		}
		overall = model.MaxStatus(overall, status)

		ids := make([]string, 0, len(members))
		for i, t := range members {
			if i >= TabletBucketCap {
				break
			}
			ids = append(ids, fmt.Sprintf("%d", t.TabletID))
		}
		issue := newIssue(status, message, location, level, "TABLET", model.TagNodeTabletState, nil, dbName, "", fmt.Sprintf("%d", nodeID), key.Type)
		issue.Count = len(members)
		issue.Listed = len(ids)
		issues = append(issues, issue)
	}
	return overall, issues
}

// evaluateSystemTablets applies SPEC_FULL.md §4.3 "System tablets" to the
// tablet requests the orchestrator tracked for one database.
func evaluateSystemTablets(requests []*model.TabletRequest, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	overall := model.StatusGreen
	var issues []*model.IssueRecord
	for _, r := range requests {
		var status model.Status
		var message string
		switch {
		case r.Unresponsive:
			status = model.StatusRed
			message = "System tablet is unresponsive"
		case r.MaxResponseTime >= SystemTabletOrangeMs*time.Millisecond:
			status = model.StatusOrange
			message = "System tablet response time is too high"
		case r.MaxResponseTime >= SystemTabletYellowMs*time.Millisecond:
			status = model.StatusYellow
			message = "System tablet response time is too high"
		default:
			continue
		}
		overall = model.MaxStatus(overall, status)
		issues = append(issues, newIssue(status, message, location, level, "SYSTEM_TABLET", model.TagSystemTabletState, nil, dbName, "", fmt.Sprintf("%d", r.TabletID)))
	}
	return overall, issues
}
