package orchestrator

import "errors"

// ErrPipeConnectFailed names a pipe-transport call (console, hive,
// scheme-shard, blob-storage controller) that failed before it reached
// the target tablet. No code in this package returns it: a failed pipe
// call's Response carries the error its transport client returned (for
// example transport.ErrPipeConnectFailed) rather than partial data.
var ErrPipeConnectFailed = errors.New("orchestrator: pipe connect failed")

// ErrUnknownCookie names a response correlated to a request id the
// orchestrator has no record of. Run matches each Response to its request
// through the goroutine that issued it and uses no correlation cookies, so
// nothing in this package returns or logs this error.
var ErrUnknownCookie = errors.New("orchestrator: unknown correlation cookie")

// ErrNegativeOutstanding marks the logic-assertion violation of the
// outstanding-request counter going negative, which can only happen if a
// response is counted twice. Surfaced as a CRITICAL log line; never
// aborts the request.
var ErrNegativeOutstanding = errors.New("orchestrator: outstanding request counter went negative")

// ErrClientNotConfigured marks a Response whose Clients field was nil
// for the RPC it needed, per Clients' documented nil-disables-it
// contract. Never panics a dispatch goroutine.
var ErrClientNotConfigured = errors.New("orchestrator: client not configured")
