package merge

import "errors"

// ErrDanglingReason marks a logic error: after referential cleanup, a
// surviving record's reason[] still names an id with no corresponding
// record. Merge itself never returns this — filterPresent silently drops
// dangling ids to preserve the referential-closure invariant — but
// callers validating merger output against SPEC_FULL.md §8's closure
// property report violations under this sentinel.
var ErrDanglingReason = errors.New("merge: issue reason references a dropped id")
