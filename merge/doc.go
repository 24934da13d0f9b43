// Package merge consolidates the flat issue-DAG package evaluate produces
// into the final, size-bounded record set package respond emits.
//
// Processing follows SPEC_FULL.md §4.4: similar sibling records are
// collapsed bottom-up per tag level (PDiskState, then VDiskState, then
// GroupState), each level is truncated to a per-parent listed cap, and a
// referential-cleanup fixed point removes any record a truncation step
// orphaned from the surviving reason[] chains.
//
// There is no teacher analogue for this stage — the original has no
// "aggregator is commutative, merge by set union" package. It is grounded
// on that design note (SPEC_FULL.md §5, §9) directly, and on
// cache/keyer.go's canonical-then-compare idiom for the similarity key.
package merge
