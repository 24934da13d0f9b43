package evaluate

import (
	"fmt"

	"github.com/coredb-io/clustercheck/model"
)

// evaluatePDisk applies SPEC_FULL.md §4.3 "PDisk". pd is nil when no
// whiteboard, controller, or static-config sighting ever named this
// pdisk id — the "state is absent" case the rule calls out explicitly.
func evaluatePDisk(pdiskID string, pd *model.PDisk, storageUnavailable map[uint32]bool, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	if pd == nil || pd.State == "" {
		var nodeID uint32
		if pd != nil {
			nodeID = pd.NodeID
		}
		if storageUnavailable[nodeID] {
			issue := newIssue(model.StatusRed, "Storage node is not available", location, level, "PDISK", model.TagPDiskState, nil, dbName, "", pdiskID)
			return model.StatusRed, []*model.IssueRecord{issue}
		}
		issue := newIssue(model.StatusRed, "PDisk is not available", location, level, "PDISK", model.TagPDiskState, nil, dbName, "", pdiskID)
		return model.StatusRed, []*model.IssueRecord{issue}
	}

	var issues []*model.IssueRecord
	status := model.StatusGreen

	switch pd.State.Bucket() {
	case model.PDiskBucketNormal:
	case model.PDiskBucketInitial:
		status = model.StatusYellow
		issues = append(issues, newIssue(status, "PDisk is initializing", location, level, "PDISK", model.TagPDiskState, nil, dbName, "", pdiskID))
	case model.PDiskBucketError:
		status = model.StatusRed
		issues = append(issues, newIssue(status, fmt.Sprintf("PDisk is %s", pd.State), location, level, "PDISK", model.TagPDiskState, nil, dbName, "", pdiskID))
	}

	ratio := pd.AvailableRatio()
	var ratioStatus model.Status
	switch {
	case ratio < PDiskRedRatio:
		ratioStatus = model.StatusRed
	case ratio < PDiskOrangeRatio:
		ratioStatus = model.StatusOrange
	case ratio < PDiskYellowRatio:
		ratioStatus = model.StatusYellow
	default:
		ratioStatus = model.StatusGreen
	}
	if ratioStatus > model.StatusGreen {
		issues = append(issues, newIssue(ratioStatus, "PDisk available size is too low", location, level, "PDISK", model.TagPDiskState, nil, dbName, "", pdiskID))
	}
	status = model.MaxStatus(status, ratioStatus)

	return status, issues
}
