// Package config loads the self-check engine's process-wide settings
// from environment variables with defaults, and decodes the static
// blob-storage config snapshot SPEC_FULL.md §9 says must be read once at
// bootstrap and never re-read during evaluation. Grounded on
// observe.Config's struct + Validate() shape and on the flag/env loading
// idiom of the teacher's cmd/server/main.go.
package config
