package evaluate

import "github.com/coredb-io/clustercheck/model"

// newIssue derives the issue's stable id (SPEC_FULL.md §4.3 "Issue id")
// and returns a ready-to-emit record. databaseName and poolName may be
// empty; they still participate in id derivation so two identical
// messages in different databases or pools never collide.
func newIssue(status model.Status, message, location string, level int, typ string, tag model.Tag, reason []string, databaseName, poolName string, literalIDs ...string) *model.IssueRecord {
	return &model.IssueRecord{
		ID:       model.IssueID(status, message, databaseName, poolName, literalIDs...),
		Status:   status,
		Message:  message,
		Location: location,
		Level:    level,
		Type:     typ,
		Tag:      tag,
		Reason:   reason,
		Count:    1,
		Listed:   1,
	}
}
