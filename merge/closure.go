package merge

import (
	"fmt"

	"github.com/coredb-io/clustercheck/model"
)

// ValidateClosure checks the referential-closure invariant SPEC_FULL.md
// §8 requires of merger output: every id named in a record's reason[]
// must resolve to another record in the same slice. Merge itself never
// produces a violation (filterPresent drops dangling ids as part of the
// fixed point), so this exists for callers that want to assert the
// property directly, e.g. in property-based tests.
func ValidateClosure(issues []*model.IssueRecord) error {
	byID := make(map[string]bool, len(issues))
	for _, is := range issues {
		byID[is.ID] = true
	}
	for _, is := range issues {
		for _, r := range is.Reason {
			if !byID[r] {
				return fmt.Errorf("%w: %s references %s", ErrDanglingReason, is.ID, r)
			}
		}
	}
	return nil
}
