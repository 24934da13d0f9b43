package respond

import (
	"github.com/coredb-io/clustercheck/model"
	"github.com/coredb-io/clustercheck/request"
)

// Response is the shaped, filtered wire response for one self-check
// request (SPEC_FULL.md §6's SelfCheckResult).
type Response struct {
	RequestID       string                 `json:"request_id"`
	SelfCheckResult model.Verdict          `json:"self_check_result"`
	IssueLog        []*model.IssueRecord   `json:"issue_log"`
	DatabaseStatus  []model.DatabaseStatus `json:"database_status,omitempty"`
}

// Shape applies f's output filters to r and maps its root status to a
// wire verdict. minimum_status and maximum_level trim IssueLog;
// return_verbose_status controls whether DatabaseStatus is populated at
// all — dropping it, not merely leaving it empty, is what distinguishes
// "verbose status not requested" from "verbose status requested but
// every database is healthy".
func Shape(r request.Result, f request.Filters) Response {
	out := Response{
		RequestID:       r.RequestID,
		SelfCheckResult: Verdict(r.Status, r.Issues),
		IssueLog:        filterIssues(r.Issues, f),
	}
	if f.ReturnVerboseStatus {
		out.DatabaseStatus = r.DatabaseStatuses
	}
	return out
}

func filterIssues(issues []*model.IssueRecord, f request.Filters) []*model.IssueRecord {
	if f.MinimumStatus == model.StatusGrey && f.MaximumLevel == 0 {
		return issues
	}
	kept := make([]*model.IssueRecord, 0, len(issues))
	for _, is := range issues {
		if is.Status < f.MinimumStatus {
			continue
		}
		if f.MaximumLevel > 0 && is.Level > f.MaximumLevel {
			continue
		}
		kept = append(kept, is)
	}
	return kept
}
