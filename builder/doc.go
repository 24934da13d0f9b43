// Package builder incrementally fuses fan-out responses into a
// model.ClusterModel. It plays the role health.Aggregator.CheckAll plays
// for named health checks — collect results and reduce them into one
// composite view — generalized from "collect named check results into a
// map" to "fuse multi-source RPC responses into one cluster model" and
// from a post-hoc reduce into an incremental one, since responses arrive
// over a channel rather than all at once.
//
// A single goroutine — the request goroutine reading orchestrator.Run's
// channel — calls Ingest once per response, so Builder itself never
// synchronizes: the non-reentrancy guarantee comes from the caller only
// ever having one response in flight through Ingest at a time.
package builder
