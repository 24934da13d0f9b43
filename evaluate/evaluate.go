package evaluate

import (
	"time"

	"github.com/coredb-io/clustercheck/aggregate"
	"github.com/coredb-io/clustercheck/model"
)

// Evaluate walks agg bottom-up per SPEC_FULL.md §4.3, deriving one overall
// status, each database's own rolled-up status, and the flat, deduped
// issue-DAG the merger consumes next. now is the wall-clock time used to
// compute the Dead-tablet and hive-window checks; callers pass a fixed
// value so a run is reproducible.
func Evaluate(agg aggregate.Result, m *model.ClusterModel, now time.Time) (model.Status, []model.DatabaseStatus, []*model.IssueRecord) {
	overall := model.StatusGreen
	var issues []*model.IssueRecord
	var databaseStatuses []model.DatabaseStatus
	seen := make(map[string]bool)

	tabletRequests := make([]*model.TabletRequest, 0, len(m.TabletRequests))
	for _, r := range m.TabletRequests {
		tabletRequests = append(tabletRequests, r)
	}

	addIssues := func(is []*model.IssueRecord) {
		for _, i := range is {
			if seen[i.ID] {
				continue
			}
			seen[i.ID] = true
			issues = append(issues, i)
		}
	}

	for _, dv := range agg.Databases {
		location := dv.Database.Path
		status, dbIssues := evaluateDatabase(dv, m, now, m.UnavailableStorageNodes, tabletRequests, location, LevelDatabase)
		overall = model.MaxStatus(overall, status)
		databaseStatuses = append(databaseStatuses, model.DatabaseStatus{Name: dv.Database.Path, Status: status})
		addIssues(dbIssues)
	}

	for _, pv := range agg.UnknownPools {
		status, poolIssues := evaluatePool(pv, m.UnavailableStorageNodes, aggregate.UnknownDatabaseName, aggregate.UnknownDatabaseName+"/"+pv.Pool.Name, LevelPoolNode)
		overall = model.MaxStatus(overall, status)
		addIssues(poolIssues)
	}

	for _, gv := range agg.UnknownGroups {
		status, groupIssues := evaluateGroup(gv, m.UnavailableStorageNodes, aggregate.UnknownDatabaseName, aggregate.UnknownDatabaseName, LevelGroup)
		overall = model.MaxStatus(overall, status)
		addIssues(groupIssues)
	}

	skewStatus, skewIssues := evaluateClockSkew(m.Nodes, "")
	overall = model.MaxStatus(overall, skewStatus)
	addIssues(skewIssues)

	return overall, databaseStatuses, issues
}
