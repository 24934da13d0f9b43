package resilience

import (
	"errors"
	"time"
)

// WhiteboardMaxRetries is the maximum number of retries the fan-out
// orchestrator issues for a single per-node whiteboard request before
// marking the node unavailable.
const WhiteboardMaxRetries = 3

// WhiteboardRetryDelay is the fixed back-off between whiteboard retries.
const WhiteboardRetryDelay = 250 * time.Millisecond

// WhiteboardRetryConfig returns the retry policy for direct-transport
// requests to per-node whiteboard services: up to 3 retries at a constant
// 250ms back-off, no jitter, on undelivered/disconnected errors only.
func WhiteboardRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  WhiteboardMaxRetries + 1, // +1 for the initial attempt
		InitialDelay: WhiteboardRetryDelay,
		MaxDelay:     WhiteboardRetryDelay,
		Strategy:     BackoffConstant,
		Jitter:       false,
		RetryIf:      IsTransientTransportError,
	}
}

// PipeConnectTimeoutConfig returns the timeout policy for establishing a
// pipe connection to a cluster tablet (console, hive, scheme-shard,
// blob-storage controller). No other package of this module calls it;
// the orchestrator's per-service executors apply no connect timeout.
func PipeConnectTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{Timeout: 3 * time.Second}
}

// PerServiceBreakerConfig returns a circuit breaker tuned to isolate one
// misbehaving cluster service from the rest of a fan-out: five consecutive
// failures opens the circuit for ten seconds, comfortably inside the
// default 10s request deadline so a tripped breaker still recovers in time
// for the next self-check request against the same service.
func PerServiceBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:         5,
		ResetTimeout:        10 * time.Second,
		HalfOpenMaxRequests: 1,
	}
}

// PerServiceBulkheadConfig returns a bulkhead tuned to cap the number of
// concurrent in-flight RPCs against one cluster service: a single
// misbehaving or slow service can only ever occupy a bounded slice of the
// fan-out's goroutines, so a pile-up of requests to scheme-shard (say)
// can't starve hive or controller calls running in the same batch.
func PerServiceBulkheadConfig() BulkheadConfig {
	return BulkheadConfig{
		MaxConcurrent: 32,
		MaxWait:       0,
	}
}

// transientTransportErr is implemented by errors the orchestrator
// classifies as retryable transport failures (undelivered, node
// disconnected) as opposed to terminal service-level errors.
type transientTransportErr interface {
	TransientTransport() bool
}

// IsTransientTransportError reports whether err should trigger a retry
// under WhiteboardRetryConfig. Errors that don't implement
// transientTransportErr are treated as non-transient (no retry) so that
// service-level errors (§7 "status != OK") fail fast instead of burning
// the retry budget.
func IsTransientTransportError(err error) bool {
	if err == nil {
		return false
	}
	var te transientTransportErr
	if errors.As(err, &te) {
		return te.TransientTransport()
	}
	return false
}
