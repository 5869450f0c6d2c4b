// Package storage is the dashboard's stand-in for browser localStorage: a
// small key-value text store scoped to one profile, with no schema
// versioning and a single-writer assumption.
package storage

// Store holds JSON-serialized values under fixed string keys.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)

	// Set writes the value immediately (write-through, no batching).
	Set(key, value string) error

	// Delete removes the key; deleting a missing key is not an error.
	Delete(key string) error
}
