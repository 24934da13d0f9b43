// Package request owns the whole per-self-check-request pipeline:
// fan-out discovery rounds against the orchestrator, model building,
// aggregation, evaluation, and merging, all behind the single wall-clock
// deadline SPEC_FULL.md §5 requires. Grounded on health/aggregator.go's
// single-deadline Aggregator.CheckAll(ctx) pattern, generalized from
// "run N independent checkers" to "run discovery rounds until the model
// builder has nothing further to ask for."
package request
