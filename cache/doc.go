// Package cache provides deterministic caching for RPC call results.
//
// It provides a Cache interface with a memory implementation, SHA-256-based
// key derivation, and TTL policies.
package cache
