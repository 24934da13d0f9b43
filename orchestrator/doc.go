// Package orchestrator is the fan-out layer of a single self-check
// request: it issues the batch of outbound RPCs the request needs,
// applies per-transport retry and deadline policy, and streams completed
// responses back to its caller over a channel.
//
// The orchestrator never touches the cluster model directly. It only
// produces Response values; the model builder, running in its own
// request-scoped goroutine, is the sole mutator of the model it
// populates from those responses. This keeps the "single-threaded
// cooperative within each request" guarantee of the source design while
// using goroutines for the actual concurrent I/O: many goroutines issue
// RPCs, exactly one goroutine ever writes to the model.
package orchestrator
