package evaluate

import "errors"

// ErrUnknownErasureSpecies is a logic error: a group named an erasure
// species the group rule table has no row for. Evaluation of that group
// falls back to treating it as ErasureNone rather than aborting, per
// SPEC_FULL.md §7's "never abort over one bad input" contract.
var ErrUnknownErasureSpecies = errors.New("evaluate: unknown erasure species")
