package evaluate

import (
	"fmt"

	"github.com/coredb-io/clustercheck/model"
)

func issueIDs(issues []*model.IssueRecord) []string {
	ids := make([]string, len(issues))
	for i, is := range issues {
		ids[i] = is.ID
	}
	return ids
}

// evaluateVDisk applies SPEC_FULL.md §4.3 "VDisk". v is nil when the
// group named this vdisk id but no whiteboard or controller sighting
// ever arrived for it; that is the "Missing VDiskState" case, treated
// identically to a whiteboard sighting whose State field never populated.
func evaluateVDisk(location string, v *model.VDisk, pd *model.PDisk, pdiskLocation string, storageUnavailable map[uint32]bool, dbName string, level int) (model.Status, []*model.IssueRecord) {
	pdStatus, pdIssues := evaluatePDisk(pdiskLocation, pd, storageUnavailable, dbName, pdiskLocation, LevelPDisk)
	pdReasons := issueIDs(pdIssues)

	var status model.Status
	var issues []*model.IssueRecord
	includePDIssues := true

	switch {
	case v == nil || v.State == "":
		status = model.StatusRed
		issues = append(issues, newIssue(status, "VDisk is not available", location, level, "VDISK", model.TagVDiskState, pdReasons, dbName, "", location))
	case v.State.IsTransient():
		msg := "VDisk is initializing"
		if v.State == model.VDiskStateSyncGuidRecovery {
			msg = "VDisk is being recovered"
		}
		status = model.StatusYellow
		issues = append(issues, newIssue(status, msg, location, level, "VDISK", model.TagVDiskState, nil, dbName, "", location))
		includePDIssues = false
	case v.State.IsError():
		status = model.StatusRed
		issues = append(issues, newIssue(status, fmt.Sprintf("VDisk state is %s", v.State), location, level, "VDISK", model.TagVDiskState, pdReasons, dbName, "", location))
	default:
		status = model.StatusGreen
	}

	if v != nil && !v.Replicated {
		status = model.StatusBlue
		issues = []*model.IssueRecord{
			newIssue(model.StatusBlue, "Replication in progress", location, level, "VDISK", model.TagVDiskState, nil, dbName, "", location),
		}
		includePDIssues = false
	}

	if includePDIssues {
		issues = append(pdIssues, issues...)
		status = model.MaxStatus(status, pdStatus)
	}

	if v != nil {
		spaceStatus := v.DiskSpace.Status()
		if spaceStatus > model.StatusGreen {
			issues = append(issues, newIssue(spaceStatus, "VDisk disk space is low", location, level, "VDISK", model.TagVDiskState, pdReasons, dbName, "", location))
			status = model.MaxStatus(status, spaceStatus)
		}
	}

	return status, issues
}
