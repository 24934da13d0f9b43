// Package evaluate derives a model.Status for every level of the cluster
// hierarchy an aggregate.Result describes, and emits the model.IssueRecord
// for every deviation found along the way. It generalizes
// health.Aggregator.OverallStatus's "max of child statuses" precedence
// rule from a flat set of named checks to the multi-level entity tree
// SPEC_FULL.md §4.3 describes, applying a distinct rule table at each
// level (pdisk, vdisk, group, pool, storage, node, database).
//
// Every rule function returns the status it derived alongside the issues
// it emitted; callers fold child statuses into their own via
// model.MaxStatus rather than mutating shared state, so the whole
// evaluation is a pure bottom-up reduction over the tree — the "explicit
// tree, flatten at emission" shape SPEC_FULL.md §9 calls for, without a
// stateful context object threaded through every call.
package evaluate
