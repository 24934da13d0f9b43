package evaluate

import (
	"fmt"

	"github.com/coredb-io/clustercheck/aggregate"
	"github.com/coredb-io/clustercheck/model"
)

// isFailedVDisk reports whether a vdisk's overall status counts as
// "failed" for the group erasure rule (SPEC_FULL.md §4.3 "Group").
func isFailedVDisk(status model.Status) bool {
	return status == model.StatusBlue || status == model.StatusRed || status == model.StatusGrey
}

// evaluateGroup applies SPEC_FULL.md §4.3 "Group — the erasure-aware
// rule". It evaluates every vdisk in gv first, then classifies the group
// from the multiset of their overall statuses and, for mirror-3-dc, the
// per-fail-realm distribution.
func evaluateGroup(gv aggregate.GroupView, storageUnavailable map[uint32]bool, dbName, location string, level int) (model.Status, []*model.IssueRecord) {
	var childIssues []*model.IssueRecord
	failed := 0
	realmFailures := make(map[uint32]int)
	allFailedAreBlue := true
	anyYellow := false

	for _, vv := range gv.VDisks {
		pdiskLoc := ""
		if vv.VDisk != nil {
			pdiskLoc = vv.VDisk.PDiskID
		}
		status, issues := evaluateVDisk(vv.ID, vv.VDisk, vv.PDisk, pdiskLoc, storageUnavailable, dbName, LevelVDisk)
		childIssues = append(childIssues, issues...)

		if status == model.StatusYellow {
			anyYellow = true
		}
		if isFailedVDisk(status) {
			failed++
			if status != model.StatusBlue {
				allFailedAreBlue = false
			}
			if vv.VDisk != nil && gv.Group.Erasure == model.ErasureMirror3DC {
				realm := gv.Group.Erasure.FailRealm(vv.VDisk.Domain)
				realmFailures[realm]++
			}
		}
	}

	var status model.Status
	var message string
	var unknownErasureIssue *model.IssueRecord

	if gv.Group.Erasure != model.ErasureNone && gv.Group.Erasure != model.ErasureBlock42 && gv.Group.Erasure != model.ErasureMirror3DC {
		literal := fmt.Sprintf("%d", gv.Group.ID)
		unknownErasureIssue = newIssue(model.StatusYellow,
			fmt.Sprintf("%v: species %d, evaluating as none", ErrUnknownErasureSpecies, gv.Group.Erasure),
			location, level, "GROUP", model.TagGroupState, nil, dbName, "", literal)
	}

	switch gv.Group.Erasure {
	case model.ErasureBlock42:
		switch {
		case failed > 2:
			status, message = model.StatusRed, "Group failed"
		case failed > 1:
			status, message = model.StatusOrange, "Group has no redundancy"
		case failed >= 1:
			if allFailedAreBlue {
				status, message = model.StatusBlue, "Group degraded"
			} else {
				status, message = model.StatusYellow, "Group degraded"
			}
		case anyYellow:
			status, message = model.StatusYellow, "Group degraded"
		default:
			status = model.StatusGreen
		}
	case model.ErasureMirror3DC:
		failedRealms := 0
		realmWithMultiple := 0
		for _, n := range realmFailures {
			if n > 0 {
				failedRealms++
			}
			if n > 1 {
				realmWithMultiple++
			}
		}
		switch {
		case failedRealms > 2 || (failedRealms == 2 && realmWithMultiple == 2):
			status, message = model.StatusRed, "Group failed"
		case failedRealms == 2:
			status, message = model.StatusOrange, "Group has no redundancy"
		case failed >= 1:
			if allFailedAreBlue {
				status, message = model.StatusBlue, "Group degraded"
			} else {
				status, message = model.StatusYellow, "Group degraded"
			}
		case anyYellow:
			status, message = model.StatusYellow, "Group degraded"
		default:
			status = model.StatusGreen
		}
	default: // ErasureNone, and any unrecognized species per unknownErasureIssue above
		switch {
		case failed >= 1:
			status, message = model.StatusRed, "Group failed"
		case anyYellow:
			status, message = model.StatusYellow, "Group degraded"
		default:
			status = model.StatusGreen
		}
	}

	var issues []*model.IssueRecord
	if message != "" {
		literal := fmt.Sprintf("%d", gv.Group.ID)
		issues = append(issues, newIssue(status, message, location, level, "GROUP", model.TagGroupState, issueIDs(childIssues), dbName, "", literal))
	}
	if unknownErasureIssue != nil {
		issues = append(issues, unknownErasureIssue)
		if status < model.StatusYellow {
			status = model.StatusYellow
		}
	}
	issues = append(issues, childIssues...)

	// The group's status floor is YELLOW, but only for the erasure
	// table's own GREEN fallback: a group the table called healthy never
	// surfaces as GREEN while a descendant issue (e.g. low disk space)
	// sits underneath it unacknowledged. An explicit BLUE — the
	// all-failed-are-replicating-in-progress case — is a deliberate
	// erasure-table verdict and survives this floor untouched.
	if status == model.StatusGreen && len(childIssues) > 0 {
		status = model.StatusYellow
	}

	return status, issues
}
