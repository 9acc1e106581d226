package storage

// Store is a durable string key-value store for credentials.
//
// Get returns an empty string (and a nil error) for a key that has never
// been set; errors are reserved for the underlying storage being
// unavailable. Callers that read credentials treat any error as "no value"
// so a broken store fails safe to logged-out.
type Store interface {
	// Set persists a value under the given key.
	Set(key, value string) error

	// Get retrieves the value for the given key, or "" if absent.
	Get(key string) (string, error)

	// Remove deletes the value for the given key. Removing an absent key
	// is not an error.
	Remove(key string) error
}
