// Package driven defines the driven ports (outbound dependencies) of the
// application core.
package driven

import "context"

// KeyValue is a generic string key-value capability. Two lifetime classes are
// wired at composition time: a durable store that survives restarts (token and
// user persistence) and a session-scoped store that lives for the process
// lifetime only (origin-check verdicts).
type KeyValue interface {
	// Get returns the value for key. The second return is false when the key
	// is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// SetMany stores all given key-value pairs atomically: a concurrent reader
	// observes either none or all of the writes.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes the given keys atomically. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
