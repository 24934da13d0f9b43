// Package model defines the request-scoped domain model the self-check
// engine builds for a single cluster self-check request: databases,
// storage pools, groups, vdisks, pdisks, nodes, tablets, tablet requests,
// and the issue records the evaluator produces while walking that model.
//
// Everything in this package is plain data plus small pure helpers (id
// derivation, status ordering, erasure classification). No I/O, no
// concurrency primitives: the fan-out orchestrator and model builder own
// synchronization, this package only owns shape and invariants.
package model
