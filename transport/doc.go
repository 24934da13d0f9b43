// Package transport declares the abstract client contracts the fan-out
// orchestrator issues requests through: scheme-cache navigation, the
// tenant/console service, scheme-shard describe, the blob-storage
// controller, the hive, and per-node whiteboard services.
//
// Every contract here is a narrow, context-aware interface in the shape
// of health.Checker's "Name() + Check(ctx)" abstraction, generalized from
// a single health probe to a per-service RPC client. Concrete
// implementations (gRPC stubs, wire codecs) are out of scope: callers
// inject a transport.WhiteboardClient, transport.HiveClient, and so on,
// and the orchestrator package is the only consumer.
package transport
