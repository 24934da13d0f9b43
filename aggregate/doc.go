// Package aggregate turns the flat, id-keyed maps a builder.Builder
// produces into the per-database hierarchy the evaluator walks: database
// -> storage pools -> groups -> vdisks -> pdisks, and database -> compute
// nodes -> tablets. It is the second half of the "collect and fuse" shape
// health.Aggregator.CheckAll establishes (collect named results into a
// map, then reduce): builder.Builder plays "collect", Build here plays
// "reduce", generalized from a flat status reduction to a multi-level
// ownership resolution.
//
// Pools, groups, vdisks, and pdisks referenced by no database (chiefly
// the synthetic "static" pool) are returned separately so the evaluator
// still surfaces their issues under the reserved "unknown database"
// location instead of silently dropping them.
package aggregate
