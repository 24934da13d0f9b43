package transport

import "errors"

// ErrUndelivered is returned by a WhiteboardClient method when the
// underlying transport could not deliver the request to the target node.
// It implements the transientTransportErr interface resilience's retry
// policy checks, so the orchestrator retries it per
// resilience.WhiteboardRetryConfig.
var ErrUndelivered = &transientError{msg: "transport: request undelivered"}

// ErrNodeDisconnected is returned when the target node's interconnect
// session is down. Also transient and retryable.
var ErrNodeDisconnected = &transientError{msg: "transport: node disconnected"}

// ErrPipeConnectFailed is returned when establishing a pipe connection to
// a cluster tablet (console, hive, scheme-shard, blob-storage controller)
// fails outright. Not retried by this layer: the orchestrator completes
// every in-flight request on that pipe with no data.
var ErrPipeConnectFailed = errors.New("transport: pipe connect failed")

// ErrServiceStatus is wrapped around a non-OK status returned by
// navigate, describe, or tenant-status. It is not transient: the
// orchestrator does not retry it, and its absence of data cascades to
// downstream issues rather than failing the whole request.
var ErrServiceStatus = errors.New("transport: service returned non-OK status")

// transientError is a minimal error implementing TransientTransport() for
// the fixed set of sentinels above. It intentionally carries no
// wrapped cause: these are leaf transport failures, not decorations on
// some other error.
type transientError struct {
	msg string
}

func (e *transientError) Error() string { return e.msg }

// TransientTransport reports that this error should be retried under
// resilience.WhiteboardRetryConfig.
func (e *transientError) TransientTransport() bool { return true }
