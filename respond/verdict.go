package respond

import "github.com/coredb-io/clustercheck/model"

// storageTags are the tags a YELLOW root status must carry at least one
// issue against for Verdict to treat it as a storage degradation rather
// than a merely-informational compute-side YELLOW (SPEC_FULL.md §4.5).
var storageTags = map[model.Tag]bool{
	model.TagPDiskState:   true,
	model.TagVDiskState:   true,
	model.TagGroupState:   true,
	model.TagPoolState:    true,
	model.TagStorageState: true,
}

// hasStorageDegradation reports whether any issue in issues is tagged
// against the storage subtree.
func hasStorageDegradation(issues []*model.IssueRecord) bool {
	for _, is := range issues {
		if storageTags[is.Tag] {
			return true
		}
	}
	return false
}

// Verdict maps a root status plus its surviving issues to the wire-level
// verdict: GREEN is always GOOD; YELLOW is GOOD unless at least one issue
// is a storage degradation, in which case it (and BLUE) is DEGRADED;
// ORANGE is MAINTENANCE_REQUIRED; RED is EMERGENCY.
func Verdict(status model.Status, issues []*model.IssueRecord) model.Verdict {
	switch status {
	case model.StatusGreen:
		return model.VerdictGood
	case model.StatusYellow:
		if hasStorageDegradation(issues) {
			return model.VerdictDegraded
		}
		return model.VerdictGood
	case model.StatusBlue:
		return model.VerdictDegraded
	case model.StatusOrange:
		return model.VerdictMaintenanceRequired
	case model.StatusRed:
		return model.VerdictEmergency
	default:
		return model.VerdictUnspecified
	}
}
