package evaluate

import (
	"fmt"
	"time"

	"github.com/coredb-io/clustercheck/aggregate"
	"github.com/coredb-io/clustercheck/model"
)

// poolLevelMessage names the pool/storage-level issue for a computed
// status per SPEC_FULL.md §4.3 "Pool, storage, database": RED means
// failed, ORANGE means no redundancy, anything else non-green (BLUE or
// YELLOW) means degraded.
func poolLevelMessage(subject string, status model.Status) string {
	switch {
	case status == model.StatusRed:
		return subject + " failed"
	case status == model.StatusOrange:
		return subject + " has no redundancy"
	case status > model.StatusGreen:
		return subject + " degraded"
	default:
		return ""
	}
}

// evaluatePool applies the pool half of "Pool, storage, database": the
// pool's status is the max over its groups.
func evaluatePool(pv aggregate.PoolView, storageUnavailable map[uint32]bool, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	overall := model.StatusGreen
	var childIssues []*model.IssueRecord
	for _, g := range pv.Groups {
		groupLoc := fmt.Sprintf("%s/%d", location, g.Group.ID)
		status, issues := evaluateGroup(g, storageUnavailable, dbName, groupLoc, level+1)
		overall = model.MaxStatus(overall, status)
		childIssues = append(childIssues, issues...)
	}

	var issues []*model.IssueRecord
	if msg := poolLevelMessage("Pool", overall); msg != "" {
		issues = append(issues, newIssue(overall, msg, location, level, "POOL", model.TagPoolState, issueIDs(childIssues), dbName, pv.Pool.Name))
	}
	issues = append(issues, childIssues...)
	return overall, issues
}

// evaluateStorage applies the storage half: it combines the max over the
// database's pools with the storage-usage ratio thresholds.
func evaluateStorage(dv aggregate.DatabaseView, storageUnavailable map[uint32]bool, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	overall := model.StatusGreen
	var childIssues []*model.IssueRecord
	for _, p := range dv.Pools {
		poolLoc := fmt.Sprintf("%s/%s", location, p.Pool.Name)
		status, issues := evaluatePool(p, storageUnavailable, dbName, poolLoc, level+1)
		overall = model.MaxStatus(overall, status)
		childIssues = append(childIssues, issues...)
	}

	var usageStatus model.Status
	var usageMessage string
	if dv.Database.StorageQuotaBytes > 0 {
		ratio := float64(dv.Database.StorageUsageBytes) / float64(dv.Database.StorageQuotaBytes)
		switch {
		case ratio > StorageUsageRedRatio:
			usageStatus, usageMessage = model.StatusRed, "Storage usage is too high"
		case ratio > StorageUsageOrangeRatio:
			usageStatus, usageMessage = model.StatusOrange, "Storage usage is high"
		case ratio > StorageUsageYellowRatio:
			usageStatus, usageMessage = model.StatusYellow, "Storage usage is high"
		}
	}

	var issues []*model.IssueRecord
	if msg := poolLevelMessage("Storage", overall); msg != "" {
		issues = append(issues, newIssue(overall, msg, location, level, "STORAGE", model.TagStorageState, issueIDs(childIssues), dbName, ""))
	}
	if usageMessage != "" {
		issues = append(issues, newIssue(usageStatus, usageMessage, location, level, "STORAGE", model.TagStorageState, nil, dbName, ""))
	}
	issues = append(issues, childIssues...)

	return model.MaxStatus(overall, usageStatus), issues
}

// evaluateDatabase combines the compute and storage halves per
// SPEC_FULL.md §4.3 "Pool, storage, database": when both sides are
// non-green the database gets one generic "multiple issues" record;
// otherwise it gets whichever side's own message applies, if any.
func evaluateDatabase(dv aggregate.DatabaseView, m *model.ClusterModel, now time.Time, storageUnavailable map[uint32]bool, systemTablets []*model.TabletRequest, location string, level int) (model.Status, []*model.IssueRecord) {
	dbName := dv.Database.Path
	storageStatus, storageIssues := evaluateStorage(dv, storageUnavailable, dbName, location+"/storage", level+1)
	computeStatus, computeIssues := evaluateComputeNodes(dv.ComputeNodes, dv.Tablets, m, now, dbName, location+"/compute", level+1)
	sysStatus, sysIssues := evaluateSystemTablets(systemTablets, dbName, location, level)

	computeStatus = model.MaxStatus(computeStatus, sysStatus)
	computeIssues = append(computeIssues, sysIssues...)

	overall := model.MaxStatus(storageStatus, computeStatus)

	var issues []*model.IssueRecord
	switch {
	case storageStatus > model.StatusGreen && computeStatus > model.StatusGreen:
		reasons := append(issueIDs(storageIssues), issueIDs(computeIssues)...)
		issues = append(issues, newIssue(overall, "Database has multiple issues", location, level, "DATABASE", model.TagDatabaseState, reasons, dbName, ""))
	case storageStatus > model.StatusGreen:
		issues = append(issues, newIssue(storageStatus, "Database storage is degraded", location, level, "DATABASE", model.TagDatabaseState, issueIDs(storageIssues), dbName, ""))
	case computeStatus > model.StatusGreen:
		issues = append(issues, newIssue(computeStatus, "Database compute is degraded", location, level, "DATABASE", model.TagDatabaseState, issueIDs(computeIssues), dbName, ""))
	}

	issues = append(issues, storageIssues...)
	issues = append(issues, computeIssues...)
	return overall, issues
}
