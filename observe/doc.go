// Package observe provides observability primitives for RPC execution.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into the fan-out
// orchestrator or the HTTP server middleware.
package observe
